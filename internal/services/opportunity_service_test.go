package services

import "testing"

func TestNextOpportunityID_FirstID(t *testing.T) {
	if got := nextOpportunityID(""); got != "OPP-001" {
		t.Fatalf("expected OPP-001 got %q", got)
	}
}

func TestNextOpportunityID_Increments(t *testing.T) {
	cases := map[string]string{
		"OPP-001": "OPP-002",
		"OPP-009": "OPP-010",
		"OPP-099": "OPP-100",
		"OPP-999": "OPP-1000",
	}
	for last, want := range cases {
		if got := nextOpportunityID(last); got != want {
			t.Fatalf("nextOpportunityID(%q) = %q, want %q", last, got, want)
		}
	}
}

func TestNextOpportunityID_MalformedFallsBackToFirst(t *testing.T) {
	for _, last := range []string{"OPP-", "OPP-abc", "garbage"} {
		if got := nextOpportunityID(last); got != "OPP-001" {
			t.Fatalf("nextOpportunityID(%q) = %q, want OPP-001", last, got)
		}
	}
}

func TestUpdateOpportunityRequestFields_OnlySetValues(t *testing.T) {
	name := "Acme Renewal"
	amount := 25000.0
	req := UpdateOpportunityRequest{
		OpportunityName: &name,
		Amount:          &amount,
	}

	fields := req.fields()
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields got %d: %v", len(fields), fields)
	}
	if fields["opportunity_name"] != name {
		t.Fatalf("unexpected opportunity_name: %v", fields["opportunity_name"])
	}
	if fields["amount"] != amount {
		t.Fatalf("unexpected amount: %v", fields["amount"])
	}
}

func TestUpdateOpportunityRequestFields_Empty(t *testing.T) {
	var req UpdateOpportunityRequest
	if fields := req.fields(); len(fields) != 0 {
		t.Fatalf("expected no fields got %v", fields)
	}
}
