package engine

import "testing"

func TestExtractReinforcement(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantType string
		wantNil  bool
	}{
		{
			name:     "items in fixed enumeration order",
			text:     "Provided sticker and praise for compliance",
			wantType: "Praise + Sticker",
		},
		{
			name:     "single token",
			text:     "gave token for compliance",
			wantType: "Token",
		},
		{
			name:     "earned a break",
			text:     "earned a break after work",
			wantType: "Break",
		},
		{
			name:     "ipad display casing",
			text:     "rewarded with iPad time",
			wantType: "iPad",
		},
		{
			name:     "generic pair with no named item",
			text:     "delivered reinforcement after the trial",
			wantType: "Reinforcement",
		},
		{
			name:     "three items",
			text:     "gave candy, a sticker and a token",
			wantType: "Token + Sticker + Candy",
		},
		{
			name:    "item without delivery verb",
			text:    "token board on the table",
			wantNil: true,
		},
		{
			name:    "delivery verb without item",
			text:    "gave him a high five",
			wantNil: true,
		},
		{
			name:    "nothing relevant",
			text:    "session went smoothly",
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractReinforcement(tt.text)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("ExtractReinforcement(%q) = %+v, want nil", tt.text, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("ExtractReinforcement(%q) = nil, want type %q", tt.text, tt.wantType)
			}
			if got.Type != tt.wantType {
				t.Errorf("type = %q, want %q", got.Type, tt.wantType)
			}
			if !got.Delivered {
				t.Error("Delivered should always be true")
			}
			if got.Details != tt.text {
				t.Errorf("Details = %q, want original text", got.Details)
			}
		})
	}
}
