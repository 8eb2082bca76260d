package transport

import (
	"testing"

	"realty_leads_backend/platform/validator"
)

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func TestUpdateLeadRequestValidation(t *testing.T) {
	val := validator.New()

	cases := []struct {
		name    string
		req     UpdateLeadRequest
		wantErr bool
	}{
		{
			name: "status only",
			req:  UpdateLeadRequest{Status: strPtr("qualified")},
		},
		{
			name: "closing a lead",
			req:  UpdateLeadRequest{Status: strPtr("closed"), Comments: strPtr("sold at asking")},
		},
		{
			name: "score at both bounds",
			req:  UpdateLeadRequest{Score: intPtr(0)},
		},
		{
			name: "score 100",
			req:  UpdateLeadRequest{Score: intPtr(100)},
		},
		{
			name:    "score above range",
			req:     UpdateLeadRequest{Score: intPtr(101)},
			wantErr: true,
		},
		{
			name:    "negative score",
			req:     UpdateLeadRequest{Score: intPtr(-1)},
			wantErr: true,
		},
		{
			name:    "empty status string",
			req:     UpdateLeadRequest{Status: strPtr("")},
			wantErr: true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := val.Struct(tc.req)
			if tc.wantErr && err == nil {
				t.Fatalf("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestUpdateLeadRequestEmpty(t *testing.T) {
	if !(UpdateLeadRequest{}).Empty() {
		t.Fatalf("zero request should be empty")
	}
	if (UpdateLeadRequest{Score: intPtr(50)}).Empty() {
		t.Fatalf("request with a score should not be empty")
	}
	if (UpdateLeadRequest{Status: strPtr("contacted")}).Empty() {
		t.Fatalf("request with a status should not be empty")
	}
}
