package app

import (
	"fmt"
	"io"
	"sync"

	"github.com/forumkit/forumkit/internal/client/api"
)

// ConsoleAlerts is the CLI's alert surface: alerts are printed as they
// appear, and the active set is tracked so the pipeline can dismiss a stale
// failure alert before a new request.
type ConsoleAlerts struct {
	mu     sync.Mutex
	w      io.Writer
	nextID int
	active map[int]api.Alert
}

func NewConsoleAlerts(w io.Writer) *ConsoleAlerts {
	return &ConsoleAlerts{w: w, active: make(map[int]api.Alert)}
}

func (c *ConsoleAlerts) Show(alert api.Alert) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	c.active[c.nextID] = alert

	fmt.Fprintf(c.w, "[%s] %s\n", alert.Type, alert.Message)
	if alert.Detail != "" {
		fmt.Fprintf(c.w, "  detail: %s\n", alert.Detail)
	}
	return c.nextID
}

func (c *ConsoleAlerts) Dismiss(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.active, id)
}

// Active returns the alerts currently shown, in insertion order.
func (c *ConsoleAlerts) Active() []api.Alert {
	c.mu.Lock()
	defer c.mu.Unlock()
	alerts := make([]api.Alert, 0, len(c.active))
	for id := 1; id <= c.nextID; id++ {
		if a, ok := c.active[id]; ok {
			alerts = append(alerts, a)
		}
	}
	return alerts
}
