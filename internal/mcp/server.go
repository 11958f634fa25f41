// Package mcp exposes the plan generator and the exercise catalog as Model Context Protocol tools so that assistants
// can build plans without going through the web forms.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/myrjola/fitcoach/internal/plan"
)

const instructions = "FitCoach workout planning server. Generate seven day workout plans from a fitness level, " +
	"a goal and body measurements, calculate BMI and browse the exercise catalog. Nothing is stored."

// New creates an MCP server with all tools and resources registered. Plans are generated through plans.
func New(plans *plan.Cache, version string, logger *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("FitCoach", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions(instructions),
	)

	h := &handlers{plans: plans, logger: logger}

	s.AddTools(
		server.ServerTool{Tool: toolGeneratePlan, Handler: h.generatePlan},
		server.ServerTool{Tool: toolCalculateBMI, Handler: h.calculateBMI},
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
		server.ServerTool{Tool: toolExerciseTip, Handler: h.exerciseTip},
	)

	s.AddResources(
		server.ServerResource{Resource: resCatalog, Handler: h.catalog},
		server.ServerResource{Resource: resRules, Handler: h.rules},
	)

	return s
}

type handlers struct {
	plans  *plan.Cache
	logger *slog.Logger
}

//nolint:gochecknoglobals // resource definitions.
var (
	resCatalog = mcp.NewResource(
		"fitcoach://catalog",
		"Exercise Catalog",
		mcp.WithResourceDescription("Every muscle group with its exercises in selection order"),
		mcp.WithMIMEType("application/json"),
	)
	resRules = mcp.NewResource(
		"fitcoach://rules",
		"Plan Rules",
		mcp.WithResourceDescription("Weekly splits per fitness level and the training style of each goal"),
		mcp.WithMIMEType("application/json"),
	)
)
