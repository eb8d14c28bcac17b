package lifecycle

import (
	"time"

	"github.com/extpoint/extpoint/extension/contract"
	"github.com/extpoint/extpoint/net/resp"

	"github.com/gin-gonic/gin"
)

// instanceView is the wire shape of one live instance
type instanceView struct {
	ID        string         `json:"id"`
	Point     string         `json:"point"`
	Status    string         `json:"status"`
	Name      string         `json:"name,omitempty"`
	Version   string         `json:"version,omitempty"`
	MountedAt string         `json:"mounted_at"`
	Metrics   map[string]any `json:"metrics,omitempty"`
}

// ManageRoutes exposes the management surface for contracts and instances
func (m *Manager) ManageRoutes(r *gin.RouterGroup) {
	r.GET("/exts/points", func(c *gin.Context) {
		contracts := contract.Contracts()
		result := make([]map[string]any, 0, len(contracts))
		for _, point := range contract.Points() {
			ct := contracts[point]
			result = append(result, map[string]any{
				"point":       ct.Point,
				"description": ct.Description,
				"inbound":     eventNames(ct.Inbound),
				"outbound":    eventNames(ct.Outbound),
			})
		}
		resp.Success(c.Writer, result)
	})

	r.GET("/exts/instances", func(c *gin.Context) {
		instances := m.ListInstances()
		result := make([]instanceView, 0, len(instances))
		for _, inst := range instances {
			result = append(result, instanceView{
				ID:        inst.ID(),
				Point:     inst.Point(),
				Status:    inst.Status(),
				Name:      inst.Metadata().Name,
				Version:   inst.Metadata().Version,
				MountedAt: inst.MountedAt().Format(time.RFC3339),
			})
		}
		resp.Success(c.Writer, result)
	})

	r.GET("/exts/instances/:id", func(c *gin.Context) {
		inst, ok := m.GetInstance(c.Param("id"))
		if !ok {
			resp.Fail(c.Writer, resp.NotFound("instance %s not found", c.Param("id")))
			return
		}
		resp.Success(c.Writer, instanceView{
			ID:        inst.ID(),
			Point:     inst.Point(),
			Status:    inst.Status(),
			Name:      inst.Metadata().Name,
			Version:   inst.Metadata().Version,
			MountedAt: inst.MountedAt().Format(time.RFC3339),
			Metrics:   inst.GetMetrics(),
		})
	})

	r.POST("/exts/instances/:id/destroy", func(c *gin.Context) {
		inst, ok := m.GetInstance(c.Param("id"))
		if !ok {
			resp.Fail(c.Writer, resp.NotFound("instance %s not found", c.Param("id")))
			return
		}
		if err := m.Destroy(inst); err != nil {
			resp.Fail(c.Writer, resp.InternalServer("failed to destroy instance %s: %v", inst.ID(), err))
			return
		}
		resp.Success(c.Writer, "instance destroyed")
	})

	r.GET("/exts/metrics", func(c *gin.Context) {
		resp.Success(c.Writer, m.GetMetrics())
	})
}

// eventNames lists the event names of a contract side
func eventNames(events map[string]any) []string {
	names := make([]string, 0, len(events))
	for name := range events {
		names = append(names, name)
	}
	return names
}
