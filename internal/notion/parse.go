package notion

import (
	"time"

	"go.uber.org/zap"

	"github.com/zoklk/ProjectTracker/internal/model"
)

type page struct {
	ID         string              `json:"id"`
	Properties map[string]property `json:"properties"`
}

type property struct {
	Type   string       `json:"type"`
	Title  []richText   `json:"title"`
	Status *statusValue `json:"status"`
	Date   *dateValue   `json:"date"`
}

type richText struct {
	PlainText string `json:"plain_text"`
}

type statusValue struct {
	Name string `json:"name"`
}

type dateValue struct {
	Start string `json:"start"`
}

// Notion status names mapped to local status values.
var statusNames = map[string]string{
	"In progress": model.StatusActive,
	"Done":        model.StatusDone,
	"Not started": model.StatusNotStarted,
	"Stopped":     model.StatusStopped,
}

// extractProject pulls a normalized record out of one Notion page.
// Returns nil when the page has no usable name.
func (c *Client) extractProject(p page) *model.RemoteProject {
	name := extractTitle(p.Properties[c.props.Name])
	if name == "" {
		c.logger.Warn("Dropping notion page without a name", zap.String("page_id", p.ID))
		return nil
	}

	status := model.StatusActive
	if prop, ok := p.Properties[c.props.Status]; ok && prop.Status != nil {
		if mapped, ok := statusNames[prop.Status.Name]; ok {
			status = mapped
		}
	}

	today := model.DateOnly(time.Now())
	start := extractDate(p.Properties[c.props.StartDate], today)
	end := extractDate(p.Properties[c.props.EndDate], today)

	return &model.RemoteProject{
		RemoteID:  p.ID,
		Name:      name,
		Status:    status,
		StartDate: start,
		EndDate:   end,
	}
}

func extractTitle(prop property) string {
	if prop.Type != "title" || len(prop.Title) == 0 {
		return ""
	}
	return prop.Title[0].PlainText
}

// extractDate parses a Notion date property, falling back to the given
// default when the property is missing or unparseable.
func extractDate(prop property, fallback time.Time) time.Time {
	if prop.Date == nil || prop.Date.Start == "" {
		return fallback
	}

	raw := prop.Date.Start
	// Notion may attach a time component; only the calendar date matters.
	if len(raw) > 10 {
		raw = raw[:10]
	}

	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return fallback
	}
	return model.DateOnly(d)
}
