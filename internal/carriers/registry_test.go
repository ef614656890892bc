package carriers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetect_Defaults(t *testing.T) {
	r := NewDefault()

	code, ok := r.Detect("1Z999AA10123456784")
	require.True(t, ok)
	require.Equal(t, "ups", code)

	_, ok = r.Detect("not-a-tracking-number")
	require.False(t, ok)

	_, ok = r.Detect("   ")
	require.False(t, ok)
}

func TestDetect_NormalizesInput(t *testing.T) {
	r := NewDefault()

	code, ok := r.Detect(" 1z999aa1 0123456784\n")
	require.True(t, ok)
	require.Equal(t, "ups", code)

	code, ok = r.Detect("9400 1000 0000 0000 0000 00")
	require.True(t, ok)
	require.Equal(t, "usps", code)

	code, ok = r.Detect("123456789012")
	require.True(t, ok)
	require.Equal(t, "fedex", code)

	code, ok = r.Detect("1234567890")
	require.True(t, ok)
	require.Equal(t, "dhl", code)

	code, ok = r.Detect("TBA123456789012")
	require.True(t, ok)
	require.Equal(t, "amazon", code)
}

func TestDetect_FirstRegisteredWins(t *testing.T) {
	r, err := New([]Carrier{
		{Code: "first", Active: true, Pattern: `^\d+$`},
		{Code: "second", Active: true, Pattern: `^\d{4}$`},
	})
	require.NoError(t, err)

	code, ok := r.Detect("1234")
	require.True(t, ok)
	require.Equal(t, "first", code)

	r, err = New([]Carrier{
		{Code: "second", Active: true, Pattern: `^\d{4}$`},
		{Code: "first", Active: true, Pattern: `^\d+$`},
	})
	require.NoError(t, err)
	code, _ = r.Detect("1234")
	require.Equal(t, "second", code)
}

func TestDetect_SkipsInactive(t *testing.T) {
	r, err := New([]Carrier{
		{Code: "off", Active: false, Pattern: `^\d+$`},
		{Code: "on", Active: true, Pattern: `^\d+$`},
	})
	require.NoError(t, err)
	code, ok := r.Detect("42")
	require.True(t, ok)
	require.Equal(t, "on", code)
}

func TestNew_Errors(t *testing.T) {
	_, err := New([]Carrier{{Code: "", Pattern: `x`}})
	require.Error(t, err)

	_, err = New([]Carrier{{Code: "a", Pattern: `(`}})
	require.Error(t, err)

	_, err = New([]Carrier{{Code: "a"}, {Code: "A"}})
	require.Error(t, err)
}

func TestTrackingURL(t *testing.T) {
	r := NewDefault()
	c, ok := r.Get("UPS")
	require.True(t, ok)
	require.Equal(t, "https://www.ups.com/track?tracknum=1Z999AA10123456784", c.TrackingURL(" 1z999aa10123456784"))

	empty := Carrier{Code: "x"}
	require.Equal(t, "", empty.TrackingURL("123"))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "carriers.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
carriers:
  - code: cdek
    name: CDEK
    active: true
    pattern: '^\d{10}$'
    tracking_url_template: "https://cdek.example/track/{tracking_number}"
  - code: post_ru
    name: Russian Post
    active: true
    pattern: '^[A-Z]{2}\d{9}RU$'
`), 0o600))

	r, err := LoadFile(p)
	require.NoError(t, err)
	require.Len(t, r.List(), 2)

	code, ok := r.Detect("RA123456789RU")
	require.True(t, ok)
	require.Equal(t, "post_ru", code)

	c, _ := r.Get("cdek")
	require.Equal(t, "https://cdek.example/track/0123456789", c.TrackingURL("0123456789"))

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestLoadFile_ActiveByDefault(t *testing.T) {
	p := filepath.Join(t.TempDir(), "carriers.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
carriers:
  - code: ups
    name: UPS
    pattern: '^1Z[0-9A-Z]{16}$'
  - code: dhl
    name: DHL
    active: false
    pattern: '^\d{10}$'
`), 0o600))

	r, err := LoadFile(p)
	require.NoError(t, err)

	code, ok := r.Detect("1Z999AA10123456784")
	require.True(t, ok)
	require.Equal(t, "ups", code)

	_, ok = r.Detect("1234567890")
	require.False(t, ok)
}
