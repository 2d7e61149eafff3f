package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/coherencelab/glotta/internal/metrics"
)

// slowToolThreshold flags tool calls that outrun a full embedding pass over
// a typical corpus. Protocol chatter never comes close.
const slowToolThreshold = 2 * time.Second

// LoggingMiddleware logs every request with timing and, for tool calls, the
// tool name and submitted corpus size. Tool call durations feed the
// mcp_tool series in the collector, so slow-call warnings and the runtime
// snapshot draw from the same numbers.
func LoggingMiddleware(logger *slog.Logger, collector *metrics.Collector) mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			start := time.Now()
			result, err := next(ctx, method, req)
			duration := time.Since(start)

			attrs := []any{
				"method", method,
				"duration_ms", duration.Milliseconds(),
			}

			toolCall := method == "tools/call"
			if toolCall {
				if collector != nil {
					collector.RecordTiming(metrics.OpMCPTool, duration)
				}
				call := describeCall(req)
				attrs = append(attrs, "tool", call.Tool)
				if call.Samples > 0 {
					attrs = append(attrs, "samples", call.Samples)
				}
				if r, ok := result.(*mcp.CallToolResult); ok && r.IsError {
					attrs = append(attrs, "tool_error", true)
				}
			}

			switch {
			case err != nil:
				attrs = append(attrs, "error", err.Error())
				logger.Error("request failed", attrs...)
			case toolCall && duration > slowToolThreshold:
				// A slow call is almost always embedding-bound; the
				// running average puts the number in context.
				if collector != nil {
					if emb := collector.Snapshot().Embedding; emb != nil {
						attrs = append(attrs, "embed_avg_ms", emb.AvgTimeMs)
					}
				}
				logger.Warn("slow tool call", attrs...)
			default:
				logger.Debug("request completed", attrs...)
			}

			return result, err
		}
	}
}

// callInfo is what the middleware reports about one tool invocation.
type callInfo struct {
	Tool    string
	Samples int
}

// describeCall pulls the tool name and corpus size out of a tools/call
// request without depending on any one tool's input schema; every corpus
// tool names its corpus field "samples".
func describeCall(req mcp.Request) callInfo {
	params := req.GetParams()
	if params == nil {
		return callInfo{}
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return callInfo{}
	}
	var call struct {
		Name      string `json:"name"`
		Arguments struct {
			Samples []json.RawMessage `json:"samples"`
		} `json:"arguments"`
	}
	if err := json.Unmarshal(raw, &call); err != nil {
		return callInfo{}
	}
	return callInfo{Tool: call.Name, Samples: len(call.Arguments.Samples)}
}
