package layouts

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutElement_JSONKeepsPayloadKind(t *testing.T) {
	original := Elements{
		{ID: "s1", X: 10, Y: 20, Width: 28, Height: 28, ZIndex: 10, Visible: true,
			Properties: SeatProps{Section: "A", Row: "B", Number: 3, PriceZoneID: "z1", Status: SeatWheelchair, Accessible: true}},
		{ID: "sa", Width: 300, Height: 200, ZIndex: 3, Visible: true,
			Properties: StandingAreaProps{Name: "Pit", Capacity: 250}},
		{ID: "st", Width: 400, Height: 80, ZIndex: 5, Locked: true,
			Properties: StageProps{Label: "Stage"}},
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var raw []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	props := raw[0]["properties"].(map[string]interface{})
	assert.Equal(t, "seat", props["kind"])

	var decoded Elements
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)
}

func TestLayoutElement_UnmarshalRejectsUnknownKind(t *testing.T) {
	payload := `{"id":"x","width":10,"height":10,"properties":{"kind":"balcony"}}`

	var el LayoutElement
	err := json.Unmarshal([]byte(payload), &el)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestLayoutElement_UnmarshalNormalizesRotation(t *testing.T) {
	payload := `{"id":"x","width":10,"height":10,"rotation":-45,"properties":{"kind":"label","text":"Exit"}}`

	var el LayoutElement
	require.NoError(t, json.Unmarshal([]byte(payload), &el))
	assert.Equal(t, 315.0, el.Rotation)
	assert.Equal(t, LabelProps{Text: "Exit"}, el.Properties)
}

func TestElements_ScanValue(t *testing.T) {
	els := Elements{{ID: "w", Width: 200, Height: 10, Properties: WallProps{Thickness: 10}}}

	value, err := els.Value()
	require.NoError(t, err)

	var scanned Elements
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, els, scanned)

	require.NoError(t, scanned.Scan(`[]`))
	assert.Empty(t, scanned)

	assert.Error(t, scanned.Scan(42))
}

func TestVenueLayout_StatusTransitions(t *testing.T) {
	layout := NewVenueLayout("Main Hall", DefaultCanvas())
	assert.Equal(t, StatusDraft, layout.Status)

	require.NoError(t, layout.Publish())
	assert.Equal(t, StatusActive, layout.Status)

	layout.Archive()
	assert.Equal(t, StatusArchived, layout.Status)
	assert.ErrorIs(t, layout.Publish(), ErrInvalidStatus)
}

func TestValidateCanvas(t *testing.T) {
	assert.NoError(t, ValidateCanvas(DefaultCanvas()))

	bad := DefaultCanvas()
	bad.BackgroundColor = "white"
	assert.Error(t, ValidateCanvas(bad))

	bad = DefaultCanvas()
	bad.Width = 0
	assert.Error(t, ValidateCanvas(bad))
}
