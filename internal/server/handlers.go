package server

import (
	"errors"
	"html/template"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/alkime/maffie/internal/control"
	"github.com/alkime/maffie/internal/document"
	"github.com/alkime/maffie/internal/eventloop"
	"github.com/gin-gonic/gin"
)

// setInputRequest is the body of PUT /api/v1/widgets/:id/inputs/:index.
// Value is a pointer so that an empty string is accepted.
type setInputRequest struct {
	Value *string `json:"value" binding:"required"`
}

// setInputResponse reports the widget after the input event. ListenerErrors
// lists listeners that failed while the change was still committed.
type setInputResponse struct {
	Widget         document.WidgetState `json:"widget"`
	ListenerErrors []string             `json:"listenerErrors,omitempty"`
}

// handleHealth handles the health check endpoint
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "maffie",
	})
}

func (s *Server) handleIndex(c *gin.Context) {
	body, err := eventloop.Call(c.Request.Context(), s.loop, func() (string, error) {
		var sb strings.Builder
		err := s.doc.Render(&sb)

		return sb.String(), err
	})
	if err != nil {
		s.fail(c, err)
		return
	}

	title := s.doc.Title()
	if title == "" {
		title = "maffie"
	}

	c.HTML(http.StatusOK, "index.tmpl", gin.H{
		"Title": title,
		//nolint:gosec // rendered by x/net/html, which escapes text and attributes
		"Body": template.HTML(body),
	})
}

func (s *Server) handleListWidgets(c *gin.Context) {
	states, err := eventloop.Call(c.Request.Context(), s.loop, func() ([]document.WidgetState, error) {
		return s.doc.Snapshot(), nil
	})
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, states)
}

func (s *Server) handleGetWidget(c *gin.Context) {
	id := c.Param("id")

	state, err := eventloop.Call(c.Request.Context(), s.loop, func() (document.WidgetState, error) {
		return s.doc.WidgetState(id)
	})
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

func (s *Server) handleSetInput(c *gin.Context) {
	id := c.Param("id")

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "input index must be an integer"})
		return
	}

	var req setInputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var resp setInputResponse
	err = s.loop.Do(c.Request.Context(), func() error {
		inputErr := s.doc.SetInput(id, index, *req.Value)

		var nerr *control.NotifyError
		if errors.As(inputErr, &nerr) {
			for _, f := range nerr.Failures {
				resp.ListenerErrors = append(resp.ListenerErrors, f.Err.Error())
			}
		} else if inputErr != nil {
			return inputErr
		}

		var stateErr error
		resp.Widget, stateErr = s.doc.WidgetState(id)

		return stateErr
	})
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// handleEvents streams document changes as server-sent events.
func (s *Server) handleEvents(c *gin.Context) {
	changes, unsubscribe := s.feed.Subscribe(s.config.EventBuffer)
	defer unsubscribe()

	ctx := c.Request.Context()

	// send headers now so clients know the subscription is live
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Writer.WriteHeaderNow()
	c.Writer.Flush()

	c.Stream(func(_ io.Writer) bool {
		select {
		case change, ok := <-changes:
			if !ok {
				return false
			}

			c.SSEvent("change", change)

			return true
		case <-ctx.Done():
			return false
		}
	})
}

func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, document.ErrUnknownWidget) || errors.Is(err, document.ErrNoSuchInput) {
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", c.FullPath(), "error", err)
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
