package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookPayload_FlattensRequest(t *testing.T) {
	payload := WebhookPayload{
		GenerationRequest: GenerationRequest{
			ToneName:        "M Social",
			ToneDescription: "bold",
			Region:          "Asia",
			Promotion:       "Flash Deal",
			Details:         "20% off",
		},
		Timestamp: "2026-01-02T03:04:05.678Z",
		Source:    DefaultSource,
	}

	jsonBytes, err := json.Marshal(payload)
	require.NoError(t, err)

	var fields map[string]string
	require.NoError(t, json.Unmarshal(jsonBytes, &fields))
	assert.Equal(t, "M Social", fields["toneName"])
	assert.Equal(t, "bold", fields["toneDescription"])
	assert.Equal(t, "Asia", fields["region"])
	assert.Equal(t, "Flash Deal", fields["promotion"])
	assert.Equal(t, "20% off", fields["details"])
	assert.Equal(t, "2026-01-02T03:04:05.678Z", fields["timestamp"])
	assert.Equal(t, "wordsmithery-ui", fields["source"])
	assert.Len(t, fields, 7)
}

func TestSelection_Validate(t *testing.T) {
	tests := []struct {
		name    string
		sel     Selection
		wantErr bool
	}{
		{
			name:    "valid",
			sel:     Selection{ToneID: "toneA", Regions: []string{"Asia"}, Promotion: "Flash Deal", Details: "offer"},
			wantErr: false,
		},
		{
			name:    "no regions",
			sel:     Selection{Regions: nil, Promotion: "Flash Deal", Details: "offer"},
			wantErr: true,
		},
		{
			name:    "duplicate regions",
			sel:     Selection{Regions: []string{"Asia", "Asia"}, Promotion: "Flash Deal", Details: "offer"},
			wantErr: true,
		},
		{
			name:    "empty details",
			sel:     Selection{Regions: []string{"Asia"}, Promotion: "Flash Deal"},
			wantErr: true,
		},
		{
			name:    "whitespace details",
			sel:     Selection{Regions: []string{"Asia"}, Promotion: "Flash Deal", Details: "  \n\t"},
			wantErr: true,
		},
		{
			name:    "missing promotion",
			sel:     Selection{Regions: []string{"Asia"}, Details: "offer"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sel.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSelection_Ready(t *testing.T) {
	assert.True(t, Selection{Regions: []string{"Global"}, Details: "x"}.Ready())
	assert.False(t, Selection{Regions: []string{"Global"}, Details: "   "}.Ready())
	assert.False(t, Selection{Details: "x"}.Ready())
}

func TestProgress_Percent(t *testing.T) {
	assert.Equal(t, 0.0, Progress{}.Percent())
	assert.Equal(t, 50.0, Progress{Current: 1, Total: 2}.Percent())
	assert.Equal(t, 100.0, Progress{Current: 3, Total: 3}.Percent())
}

func TestFindTone(t *testing.T) {
	profiles := []ToneProfile{{ID: "toneA", Name: "A"}, {ID: "toneB", Name: "B"}}

	found := FindTone(profiles, "toneB")
	require.NotNil(t, found)
	assert.Equal(t, "B", found.Name)
	assert.Nil(t, FindTone(profiles, "toneC"))
}

func TestCatalog(t *testing.T) {
	assert.True(t, IsKnownRegion(DefaultRegion))
	assert.False(t, IsKnownRegion("Atlantis"))
	assert.Equal(t, "New Year Promotion", DefaultPromotion())
	assert.True(t, IsKnownPromotion("Black Friday"))
	assert.False(t, IsKnownPromotion("Cyber Monday"))
}

func TestSelection_CheckCatalog(t *testing.T) {
	ok := Selection{Regions: []string{"Asia", "New Zealand"}, Promotion: "Black Friday", Details: "x"}
	assert.NoError(t, ok.CheckCatalog())

	badRegion := Selection{Regions: []string{"Atlantis"}, Promotion: "Black Friday"}
	var fieldErr *FieldError
	require.ErrorAs(t, badRegion.CheckCatalog(), &fieldErr)
	assert.Equal(t, "regions", fieldErr.Field)

	badPromotion := Selection{Regions: []string{"Asia"}, Promotion: "Spring Fling"}
	require.ErrorAs(t, badPromotion.CheckCatalog(), &fieldErr)
	assert.Equal(t, "promotion", fieldErr.Field)
}
