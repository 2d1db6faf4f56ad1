package middleware

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/gemgate/gemgate/app"
	"github.com/gemgate/gemgate/request"
	"github.com/gemgate/gemgate/response"
)

// Logging provides basic request logging without colors.
func Logging(next app.Handler) app.Handler {
	return app.HandlerFunc(func(ctx context.Context, r *request.Request) (*response.Response, error) {
		now := time.Now()
		resp, err := next.Handle(ctx, r)
		if resp != nil {
			log.Printf("%s %d %s in %s\n", r.Path, resp.Status, resp.Meta, time.Since(now))
		}
		return resp, err
	})
}

// LoggingColored provides colored request logging.
func LoggingColored(next app.Handler) app.Handler {
	pathStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)

	return app.HandlerFunc(func(ctx context.Context, r *request.Request) (*response.Response, error) {
		now := time.Now()
		resp, err := next.Handle(ctx, r)
		if resp == nil {
			return resp, err
		}

		statusStyle := getStatusStyle(resp.Status)
		styledStatus := statusStyle.Render(fmt.Sprintf("%d %s", resp.Status, resp.Meta))

		log.Printf("%s %s in %s\n", pathStyle.Render(r.Path), styledStatus, time.Since(now))

		return resp, err
	})
}

// getStatusStyle returns a lipgloss style for Gemini status categories
func getStatusStyle(code response.StatusCode) lipgloss.Style {
	switch {
	case code >= 10 && code < 20:
		// 1x Input - Blue
		return lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	case code >= 20 && code < 30:
		// 2x Success - Green
		return lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	case code >= 30 && code < 40:
		// 3x Redirect - Yellow
		return lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	case code >= 40 && code < 50:
		// 4x Temporary failure - Orange
		return lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	case code >= 50 && code < 60:
		// 5x Permanent failure - Bright Red
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	case code >= 60 && code < 70:
		// 6x Certificate - Magenta
		return lipgloss.NewStyle().Foreground(lipgloss.Color("201")).Bold(true)
	default:
		// Unknown status codes - White
		return lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	}
}
