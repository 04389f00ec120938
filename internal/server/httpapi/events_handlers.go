package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/eventhub/internal/common"
	"github.com/dmitrijs2005/eventhub/internal/server/services"
)

// dateLayout is the calendar-date format the API accepts ("2025-06-01").
const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if d, err := time.Parse(dateLayout, s); err == nil {
		return d, nil
	}
	if d, err := time.Parse(time.RFC3339, s); err == nil {
		return d, nil
	}
	return time.Time{}, fmt.Errorf("%w: invalid date format, want YYYY-MM-DD", common.ErrValidation)
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/form-data")
}

// saveBanner stores the uploaded banner file, if any, and returns the
// reference to record on the event. Absent file is not an error.
func (s *Server) saveBanner(c *gin.Context) (string, error) {
	file, header, err := c.Request.FormFile("banner")
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", fmt.Errorf("%w: invalid banner upload", common.ErrValidation)
	}
	defer file.Close()

	if header.Size > s.maxUploadSize {
		return "", fmt.Errorf("%w: banner exceeds size limit", common.ErrValidation)
	}

	return s.store.Save(c.Request.Context(), header.Filename, header.Header.Get("Content-Type"), file)
}

type eventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Category    string `json:"category"`
}

type eventUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Location    *string `json:"location"`
	Category    *string `json:"category"`
}

func (s *Server) listEvents(c *gin.Context) {
	views, err := s.events.List(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (s *Server) getEvent(c *gin.Context) {
	view, err := s.events.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) createEvent(c *gin.Context) {

	var in services.CreateEventInput

	if isMultipart(c) {
		date, err := parseDate(c.PostForm("date"))
		if err != nil {
			s.respondError(c, err)
			return
		}

		banner, err := s.saveBanner(c)
		if err != nil {
			s.respondError(c, err)
			return
		}

		in = services.CreateEventInput{
			Title:       c.PostForm("title"),
			Description: c.PostForm("description"),
			Date:        date,
			TimeLabel:   c.PostForm("time"),
			Location:    c.PostForm("location"),
			Category:    c.PostForm("category"),
			Banner:      banner,
		}
	} else {
		var req eventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		date, err := parseDate(req.Date)
		if err != nil {
			s.respondError(c, err)
			return
		}

		in = services.CreateEventInput{
			Title:       req.Title,
			Description: req.Description,
			Date:        date,
			TimeLabel:   req.Time,
			Location:    req.Location,
			Category:    req.Category,
		}
	}

	view, err := s.events.Create(c.Request.Context(), currentUserID(c), in)
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "event created", "event_id", view.ID)
	c.JSON(http.StatusCreated, view)
}

func (s *Server) updateEvent(c *gin.Context) {

	var in services.UpdateEventInput

	if isMultipart(c) {
		if v, ok := c.GetPostForm("title"); ok {
			in.Title = &v
		}
		if v, ok := c.GetPostForm("description"); ok {
			in.Description = &v
		}
		if v, ok := c.GetPostForm("date"); ok {
			date, err := parseDate(v)
			if err != nil {
				s.respondError(c, err)
				return
			}
			in.Date = &date
		}
		if v, ok := c.GetPostForm("time"); ok {
			in.TimeLabel = &v
		}
		if v, ok := c.GetPostForm("location"); ok {
			in.Location = &v
		}
		if v, ok := c.GetPostForm("category"); ok {
			in.Category = &v
		}

		// The banner reference is replaced only when a new file arrives.
		banner, err := s.saveBanner(c)
		if err != nil {
			s.respondError(c, err)
			return
		}
		if banner != "" {
			in.Banner = &banner
		}
	} else {
		var req eventUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		in.Title = req.Title
		in.Description = req.Description
		in.TimeLabel = req.Time
		in.Location = req.Location
		in.Category = req.Category

		if req.Date != nil {
			date, err := parseDate(*req.Date)
			if err != nil {
				s.respondError(c, err)
				return
			}
			in.Date = &date
		}
	}

	view, err := s.events.Update(c.Request.Context(), c.Param("id"), currentUserID(c), in)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (s *Server) deleteEvent(c *gin.Context) {
	err := s.events.Delete(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "event deleted", "event_id", c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "event deleted"})
}

func (s *Server) registerAttendance(c *gin.Context) {
	view, err := s.events.Register(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "registered", "event": view})
}
