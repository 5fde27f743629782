package server

import (
	"fmt"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/log"
)

// RenderLogger implements core.Logger by forwarding renderer progress to the
// server's logger, tagged with the render it belongs to
type RenderLogger struct {
	renderID string
	logger   log.Logger
}

// NewRenderLogger creates a logger for a specific render
func NewRenderLogger(renderID string, logger log.Logger) core.Logger {
	return &RenderLogger{
		renderID: renderID,
		logger:   logger,
	}
}

// Printf implements core.Logger interface
func (rl *RenderLogger) Printf(format string, args ...interface{}) {
	message := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	rl.logger.Infof("[render %s] %s", rl.renderID, message)
}
