package gemini

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"github.com/Rrens/docchat/internal/llm"
)

func TestSplitMessages(t *testing.T) {
	system, history, last, err := splitMessages([]llm.Message{
		{Role: llm.RoleSystem, Content: "be nice"},
		{Role: llm.RoleAssistant, Content: "hello"},
		{Role: llm.RoleUser, Content: "first"},
		{Role: llm.RoleAssistant, Content: "answer"},
		{Role: llm.RoleUser, Content: "second"},
	})
	require.NoError(t, err)

	assert.Equal(t, "be nice", system)
	assert.Equal(t, "second", last)
	require.Len(t, history, 3)
	assert.Equal(t, "model", history[0].Role)
	assert.Equal(t, []genai.Part{genai.Text("hello")}, history[0].Parts)
	assert.Equal(t, "user", history[1].Role)
	assert.Equal(t, "model", history[2].Role)
}

func TestSplitMessages_RequiresUserTurn(t *testing.T) {
	_, _, _, err := splitMessages(nil)
	assert.Error(t, err)

	_, _, _, err = splitMessages([]llm.Message{{Role: llm.RoleAssistant, Content: "x"}})
	assert.Error(t, err)
}

func TestWrapError(t *testing.T) {
	err := wrapError(fmt.Errorf("call: %w", &googleapi.Error{Code: 404, Message: "model not found"}))

	var statusErr *llm.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 404, statusErr.Code)

	plain := errors.New("boom")
	assert.Equal(t, plain, wrapError(plain))
}
