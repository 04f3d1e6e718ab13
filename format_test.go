package iconfont

import "testing"

func TestResolveFormatsClosure(t *testing.T) {
	tests := []struct {
		name      string
		requested []Format
		active    []Format
		inactive  []Format
	}{
		{
			name:      "woff2 pulls in ttf and the container",
			requested: []Format{FormatWOFF2},
			active:    []Format{FormatWOFF2, FormatTTF, FormatSVGFont},
			inactive:  []Format{FormatEOT, FormatWOFF, FormatSVG, FormatJS, FormatCSS, FormatHTML},
		},
		{
			name:      "js pulls in the sprite",
			requested: []Format{FormatJS},
			active:    []Format{FormatJS, FormatSVG},
			inactive:  []Format{FormatSVGFont, FormatTTF, FormatCSS},
		},
		{
			name:      "css stands alone",
			requested: []Format{FormatCSS},
			active:    []Format{FormatCSS},
			inactive:  []Format{FormatSVGFont, FormatTTF, FormatSVG},
		},
		{
			name:      "empty request activates everything",
			requested: nil,
			active:    AllFormats(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			active, err := resolveFormats(tt.requested)
			if err != nil {
				t.Fatalf("resolveFormats: %v", err)
			}
			for _, f := range tt.active {
				if !active[f] {
					t.Errorf("%q inactive, want active", f)
				}
			}
			for _, f := range tt.inactive {
				if active[f] {
					t.Errorf("%q active, want inactive", f)
				}
			}
		})
	}
}

func TestResolveFormatsUnknown(t *testing.T) {
	if _, err := resolveFormats([]Format{"otf"}); err == nil {
		t.Fatal("expected an error for an unknown format")
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" WOFF2 ")
	if err != nil {
		t.Fatalf("ParseFormat: %v", err)
	}
	if f != FormatWOFF2 {
		t.Errorf("ParseFormat = %q, want %q", f, FormatWOFF2)
	}
	if _, err := ParseFormat("bitmap"); err == nil {
		t.Error("expected an error for an unknown name")
	}
}
