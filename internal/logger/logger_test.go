package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTSKV_Format(t *testing.T) {
	var buf bytes.Buffer
	lg := NewTSKV(&buf)

	lg.Log("seats reserved", "f1", 2)

	line := strings.TrimSuffix(buf.String(), "\n")
	parts := strings.Split(line, "\t")
	require.Len(t, parts, 3)
	assert.Equal(t, "level=log", parts[0])
	assert.Equal(t, "message=seats reserved", parts[1])
	assert.Equal(t, `optional=["f1",2]`, parts[2])
}

func TestTSKV_SanitizesMessage(t *testing.T) {
	var buf bytes.Buffer
	lg := NewTSKV(&buf)

	lg.Error("bad\tvalue\nhere")

	line := strings.TrimSuffix(buf.String(), "\n")
	assert.Equal(t, "level=error\tmessage=bad value here", line)
}

func TestTSKV_NoOptional(t *testing.T) {
	var buf bytes.Buffer
	lg := NewTSKV(&buf)

	lg.Warn("broker down")

	assert.Equal(t, "level=warn\tmessage=broker down\n", buf.String())
}

func TestJSON_Format(t *testing.T) {
	var buf bytes.Buffer
	lg := NewJSON(&buf)

	lg.Log("order created", "abc", 3)

	var rec struct {
		Level          string        `json:"level"`
		Message        string        `json:"message"`
		OptionalParams []interface{} `json:"optionalParams"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "log", rec.Level)
	assert.Equal(t, "order created", rec.Message)
	require.Len(t, rec.OptionalParams, 2)
	assert.Equal(t, "abc", rec.OptionalParams[0])
}

func TestNew_SelectsFormat(t *testing.T) {
	assert.IsType(t, &TSKVLogger{}, New("tskv"))
	assert.IsType(t, &TSKVLogger{}, New("TSKV"))
	assert.IsType(t, &JSONLogger{}, New("json"))
	assert.IsType(t, &DevLogger{}, New("dev"))
	assert.IsType(t, &DevLogger{}, New("anything-else"))
}
