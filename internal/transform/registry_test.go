package transform

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformRegistry_List(t *testing.T) {
	registry := NewTransformRegistry()
	assert.Equal(t, []string{"delay_claim", "set_claim_age", "set_claim_date", "set_earnings", "stop_work"}, registry.List())
}

func TestTransformRegistry_ParseTransformSpec(t *testing.T) {
	registry := NewTransformRegistry()

	tests := []struct {
		spec     string
		wantName string
		wantErr  bool
	}{
		{spec: "delay_claim:months=12", wantName: "delay_claim"},
		{spec: "set_claim_date:date=2030-05-14", wantName: "set_claim_date"},
		{spec: "set_claim_age:years=66, months=4", wantName: "set_claim_age"},
		{spec: "set_claim_age:years=70", wantName: "set_claim_age"},
		{spec: "set_earnings:year=2024,amount=65000.50", wantName: "set_earnings"},
		{spec: "stop_work:year=2025", wantName: "stop_work"},
		{spec: "delay_claim", wantErr: true},
		{spec: "delay_claim:", wantErr: true},
		{spec: "delay_claim:months=abc", wantErr: true},
		{spec: "delay_claim:months", wantErr: true},
		{spec: "set_claim_date:date=05/14/2030", wantErr: true},
		{spec: "set_earnings:year=2024,amount=lots", wantErr: true},
		{spec: "retire_early:months=1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			tr, err := registry.ParseTransformSpec(tt.spec)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, tr.Name())
			assert.NotEmpty(t, tr.Description())
		})
	}
}

func TestTransformRegistry_ApplySpecs(t *testing.T) {
	registry := NewTransformRegistry()

	result, err := registry.ApplySpecs(baseCase(), []string{"set_claim_age:years=62", "delay_claim:months=6"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2022, 11, 15, 0, 0, 0, 0, time.UTC), *result.Scenario.ClaimDate)

	_, err = registry.ApplySpecs(baseCase(), []string{"bogus:x=1"})
	assert.Error(t, err)
}

func TestTransformRegistry_Resolve(t *testing.T) {
	registry := NewTransformRegistry()
	base := baseCase()
	base.Scenario.Transforms = []string{"set_claim_date:date=2028-01-15"}

	resolved, err := registry.Resolve(base)
	require.NoError(t, err)
	assert.Empty(t, resolved.Scenario.Transforms)
	assert.Equal(t, time.Date(2028, 1, 15, 0, 0, 0, 0, time.UTC), *resolved.Scenario.ClaimDate)
	assert.Len(t, base.Scenario.Transforms, 1, "base case is not modified")

	// A template then moves the resolved claim, not the original one
	tmpl, ok := CreateBuiltInTemplates().Get("delay_1yr")
	require.True(t, ok)
	delayed, err := ApplyTemplate(resolved, tmpl)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2029, 1, 15, 0, 0, 0, 0, time.UTC), *delayed.Scenario.ClaimDate)

	base.Scenario.Transforms = []string{"bogus:x=1"}
	_, err = registry.Resolve(base)
	assert.Error(t, err)
	_, err = registry.Resolve(nil)
	assert.Error(t, err)
}

func TestBuiltInTemplates(t *testing.T) {
	registry := CreateBuiltInTemplates()
	assert.Equal(t, []string{"claim_62", "claim_67", "claim_70", "delay_1yr", "delay_2yr", "delay_3yr"}, registry.List())

	tmpl, ok := registry.Get("CLAIM_70")
	require.True(t, ok)
	result, err := ApplyTemplate(baseCase(), tmpl)
	require.NoError(t, err)
	assert.Equal(t, 70, result.Scenario.ClaimAge.Years)

	tmpl, ok = registry.Get("delay_2yr")
	require.True(t, ok)
	result, err = ApplyTemplate(baseCase(), tmpl)
	require.NoError(t, err)
	assert.Equal(t, 2029, result.Scenario.ClaimDate.Year())

	_, ok = registry.Get("postpone_1yr")
	assert.False(t, ok)

	help := GetTemplateHelp(registry)
	assert.True(t, strings.HasPrefix(help, "Available Templates:"))
	assert.Contains(t, help, "claim_70")
	assert.Equal(t, "No templates registered", GetTemplateHelp(NewTemplateRegistry()))
}

func TestParseTemplateList(t *testing.T) {
	assert.Nil(t, ParseTemplateList(""))
	assert.Equal(t, []string{"claim_62", "delay_1yr"}, ParseTemplateList(" claim_62, ,delay_1yr "))
}
