package service

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	projectdto "scopdash/internal/modules/project/dto"
	apperrors "scopdash/internal/platform/errors"
)

func TestDecodeRejectsMissingOrNullData(t *testing.T) {
	t.Parallel()
	for _, payload := range []string{
		`{"version":"1.0"}`,
		`{"version":"1.0","data":null}`,
		`{"version":`,
		`[]`,
		`{"data":"text"}`,
		`{"data":{"projectData":{"projectName":"Y"}}} garbage`,
		`{"data":{}}{"data":{}}`,
	} {
		_, err := Decode([]byte(payload))
		require.Truef(t, errors.Is(err, apperrors.ErrInvalidFormat), "payload %s: got %v", payload, err)
	}
}

func TestDecodeIgnoresUnknownAndDerivedKeys(t *testing.T) {
	t.Parallel()
	env, err := Decode([]byte(`{"data":{"keyMetrics":{"stepsCompleted":42,"totalSteps":42,"employeeEngagement":55},"extra":true}}`))
	require.NoError(t, err)
	require.Equal(t, []string{"keyMetrics"}, env.Data.Sections())

	in, err := ToImport(*env.Data)
	require.NoError(t, err)
	require.NotNil(t, in.Metrics)
	require.Equal(t, 55, *in.Metrics.EmployeeEngagement)
	require.Nil(t, in.Metrics.SecuredFinancing)
	require.Nil(t, in.Project)
	require.Nil(t, in.Documents)
}

func TestToImportRejectsFractionalEngagement(t *testing.T) {
	t.Parallel()
	env, err := Decode([]byte(`{"data":{"keyMetrics":{"employeeEngagement":55.5}}}`))
	require.NoError(t, err)
	_, err = ToImport(*env.Data)
	require.ErrorIs(t, err, apperrors.ErrInvalidFormat)
}

func TestEncodeWritesEnvelopeWithoutDerivedFields(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC)
	payload, err := Encode(projectdto.DashboardOutput{
		Project: projectdto.ProjectOutput{Name: "P", Date: now},
		Metrics: projectdto.MetricsOutput{EmployeeEngagement: 78, StepsCompleted: 4, TotalSteps: 6},
	}, now)
	require.NoError(t, err)
	require.False(t, strings.Contains(string(payload), "stepsCompleted"))
	require.False(t, strings.Contains(string(payload), "totalSteps"))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(payload, &raw))
	require.Equal(t, "1.0", raw["version"])
	require.Equal(t, "2026-04-01T09:30:00Z", raw["timestamp"])
	data := raw["data"].(map[string]any)
	for _, key := range []string{"keyMetrics", "projectData", "documents", "analysis", "nextSteps"} {
		require.Contains(t, data, key)
	}
	require.Equal(t, []any{}, data["documents"])
}
