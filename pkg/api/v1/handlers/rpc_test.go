package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postRPC(t *testing.T, app *fiber.App, body interface{}) (int, RPCResponse) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var rpcResp RPCResponse
	require.NoError(t, json.Unmarshal(raw, &rpcResp))
	return resp.StatusCode, rpcResp
}

func TestHandleRPC_Routing(t *testing.T) {
	app := fiber.New()
	handler := &RPCHandler{}
	app.Post("/", handler.HandleRPC)

	t.Run("missing_method", func(t *testing.T) {
		status, resp := postRPC(t, app, RPCRequest{ID: "req-1"})
		assert.Equal(t, fiber.StatusBadRequest, status)
		require.NotNil(t, resp.Error)
		assert.Equal(t, ErrMsgMethodRequired, resp.Error.Message)
		assert.Equal(t, "req-1", resp.ID)
		assert.False(t, resp.Success)
	})

	t.Run("unknown_method", func(t *testing.T) {
		status, resp := postRPC(t, app, RPCRequest{Method: "job.teleport"})
		assert.Equal(t, fiber.StatusBadRequest, status)
		require.NotNil(t, resp.Error)
		assert.Equal(t, ErrMsgUnknownMethod, resp.Error.Message)
	})

	t.Run("handlers_not_configured", func(t *testing.T) {
		status, resp := postRPC(t, app, RPCRequest{Method: SuggestionPropose})
		assert.Equal(t, fiber.StatusInternalServerError, status)
		require.NotNil(t, resp.Error)
	})
}

func TestMethodPredicates(t *testing.T) {
	assert.True(t, IsSuggestionMethod(SuggestionRespond))
	assert.True(t, IsOptimizationMethod(OptimizationRespondSuggestion))
	assert.True(t, IsScheduleMethod(SchedulePlan))

	assert.False(t, IsSuggestionMethod(OptimizationAccept))
	assert.False(t, IsOptimizationMethod("optimization.unknown"))
	assert.False(t, IsScheduleMethod(""))
}

func TestParseParams(t *testing.T) {
	req := RPCRequest{
		Method: SuggestionRespond,
		Params: map[string]interface{}{
			"suggestion_id": 42,
			"accept":        true,
		},
	}

	params, err := parseParams[SuggestionRespondParams](req)
	require.NoError(t, err)
	assert.Equal(t, uint(42), params.SuggestionID)
	assert.True(t, params.Accept)
}
