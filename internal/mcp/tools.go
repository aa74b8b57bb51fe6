package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

// defaultTimeRange returns start/end defaulting to the last 7 days.
func defaultTimeRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = time.Now()
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, 0, -7)
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

// --- Tool definitions ---

var toolGetWallet = mcp.NewTool("get_wallet",
	mcp.WithDescription("Get the coin wallet: lifetime coin balance plus total pushups, situps, and workout sessions."),
)

var toolGetRecentReps = mcp.NewTool("get_recent_reps",
	mcp.WithDescription("Retrieve recently recorded reps, newest first. Each rep carries its exercise type, coin reward, signal source, and timestamp."),
	mcp.WithNumber("limit", mcp.Description("Maximum reps to return. Defaults to 100.")),
)

var toolGetSessions = mcp.NewTool("get_sessions",
	mcp.WithDescription("Retrieve recent workout session summaries with pushup/situp counts and coins earned, newest first."),
	mcp.WithNumber("limit", mcp.Description("Maximum sessions to return. Defaults to 100.")),
)

var toolGetRepStats = mcp.NewTool("get_rep_stats",
	mcp.WithDescription("Time-bucketed rep counts and coin totals per exercise type."),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 7 days ago.")),
	mcp.WithString("end", mcp.Description("End date (ISO 8601 or YYYY-MM-DD). Defaults to now.")),
	mcp.WithString("bucket", mcp.Description("Time bucket size. Defaults to 'day'."), mcp.Enum("hour", "day", "week")),
)

// --- Tool handlers ---

func (h *handlers) getWallet(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	wallet, err := h.ds.GetWallet(ctx)
	if err != nil {
		h.log.Error("mcp get_wallet", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(wallet)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getRecentReps(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 100)

	reps, err := h.ds.QueryRecentReps(ctx, limit)
	if err != nil {
		h.log.Error("mcp get_recent_reps", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(reps)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSessions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 100)

	sessions, err := h.ds.QueryRecentSessions(ctx, limit)
	if err != nil {
		h.log.Error("mcp get_sessions", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(sessions)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getRepStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	bucket := req.GetString("bucket", "day")

	points, err := h.ds.GetRepStats(ctx, start, end, bucket)
	if err != nil {
		h.log.Error("mcp get_rep_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(points)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
