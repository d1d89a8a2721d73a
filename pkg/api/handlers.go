package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fortimon/pkg/agent"
	"fortimon/pkg/config"
	"fortimon/pkg/models"
	"fortimon/pkg/plugin"
)

// CheckHandler serves check, discovery and agent-argument requests.
type CheckHandler struct {
	cfg      *config.Config
	registry *plugin.Registry
	metrics  *Metrics
}

// NewCheckHandler creates a new handler
func NewCheckHandler(cfg *config.Config, registry *plugin.Registry, metrics *Metrics) *CheckHandler {
	return &CheckHandler{cfg: cfg, registry: registry, metrics: metrics}
}

// RegisterRoutes registers the plugin routes
func (h *CheckHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/plugins", h.Plugins)
	r.POST("/check", h.Check)
	r.POST("/discover", h.Discover)
	r.POST("/agent/arguments", h.AgentArguments)
}

// PluginInfo describes a registered plugin and the metrics it emits.
type PluginInfo struct {
	Name    string              `json:"name"`
	Service string              `json:"service"`
	Metrics []plugin.MetricInfo `json:"metrics"`
}

// Plugins lists the registered plugins
func (h *CheckHandler) Plugins(c *gin.Context) {
	regs := h.registry.List()
	out := make([]PluginInfo, 0, len(regs))
	for _, reg := range regs {
		out = append(out, PluginInfo{
			Name:    reg.Name,
			Service: reg.ServiceName,
			Metrics: plugin.MetricsFor(reg.Name),
		})
	}
	c.JSON(http.StatusOK, out)
}

// Check evaluates a batch of tasks
func (h *CheckHandler) Check(c *gin.Context) {
	h.run(c, false)
}

// Discover runs discovery over a batch of tasks
func (h *CheckHandler) Discover(c *gin.Context) {
	h.run(c, true)
}

func (h *CheckHandler) run(c *gin.Context, discovery bool) {
	var tasks []plugin.Task
	if err := c.ShouldBindJSON(&tasks); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	results, err := plugin.Run(c.Request.Context(), h.registry, tasks, plugin.Options{
		Discovery:   discovery,
		Concurrency: h.cfg.WorkerConcurrency,
		Defaults:    h.cfg.EvaluationDefaults(),
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	if !discovery {
		h.metrics.Observe(results)
	}
	c.JSON(http.StatusOK, results)
}

// ArgumentsRequest is the special-agent rule of one host.
type ArgumentsRequest struct {
	Host   models.HostConfig `json:"host"`
	Params json.RawMessage   `json:"params" binding:"required"`
}

// AgentArguments renders the special-agent command line
func (h *CheckHandler) AgentArguments(c *gin.Context) {
	var req ArgumentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	params, err := agent.ParseParams(req.Params)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	params, err = plugin.DecryptAPIKey(params, h.cfg.EncryptionKey)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	args, err := agent.Arguments(params, req.Host)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, models.ErrInvalidParams) {
			code = http.StatusBadRequest
		}
		respondError(c, code, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"arguments": args})
}
