package protocol_test

import (
	"strings"
	"testing"

	"droog.gg/internal/protocol"
)

func TestSchemas_ValidateSamples(t *testing.T) {
	validate := func(payload string) {
		t.Helper()
		if err := protocol.Validate([]byte(payload)); err != nil {
			t.Fatalf("validate: %v", err)
		}
	}

	validate(`{
	  "type":"MATCH_STATE",
	  "protocol_version":"1.0",
	  "match_id":42,
	  "start_ts":1000,
	  "end_ts":2800,
	  "player_a":"7cVf...a",
	  "player_b":"9kQm...b",
	  "customers":[
	    {"last_served_ts":0,"total_serves":0},
	    {"last_served_ts":1030,"total_serves":2,"last_served_by":"7cVf...a"}
	  ],
	  "player_a_sales":2,
	  "player_b_sales":0,
	  "player_a_reputation":35,
	  "player_b_reputation":-10,
	  "is_finalized":false
	}`)

	validate(`{
	  "type":"DELIVERY_STATE",
	  "protocol_version":"1.0",
	  "match_id":42,
	  "last_update_ts":1980,
	  "available_customers":[1,6,22,14],
	  "active_count":4,
	  "rotation_bucket":33
	}`)

	validate(`{
	  "type":"GROW_STATE",
	  "protocol_version":"1.0",
	  "match_id":42,
	  "player":"7cVf...a",
	  "slots":[
	    {"state":"EMPTY"},
	    {"state":"GROWING","strain_level":2,"variant_id":1,"planted_at":1200},
	    {"state":"READY","strain_level":3,"variant_id":0,"planted_at":900,"last_harvested_ts":0}
	  ],
	  "inventory":{"level1":1,"level2":0,"level3":2}
	}`)
}

func TestSchemas_RejectBadPayloads(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"delivery slot out of range", `{
		  "type":"DELIVERY_STATE","protocol_version":"1.0","match_id":1,
		  "last_update_ts":0,"available_customers":[23],"active_count":1,"rotation_bucket":0
		}`},
		{"delivery too many slots", `{
		  "type":"DELIVERY_STATE","protocol_version":"1.0","match_id":1,
		  "last_update_ts":0,"available_customers":[0,1,2,3,4,5],"active_count":6,"rotation_bucket":0
		}`},
		{"grow bad plant state", `{
		  "type":"GROW_STATE","protocol_version":"1.0","match_id":1,"player":"p",
		  "slots":[{"state":"SPROUTING"}],"inventory":{"level1":0,"level2":0,"level3":0}
		}`},
		{"match reputation out of clamp", `{
		  "type":"MATCH_STATE","protocol_version":"1.0","match_id":1,
		  "start_ts":0,"end_ts":1,"player_a":"a","player_b":"b","customers":[],
		  "player_a_reputation":1001
		}`},
		{"match missing players", `{
		  "type":"MATCH_STATE","protocol_version":"1.0","match_id":1,
		  "start_ts":0,"end_ts":1,"customers":[]
		}`},
	}
	for _, tc := range cases {
		if err := protocol.Validate([]byte(tc.payload)); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestSchemas_UnknownTypeSkipsValidation(t *testing.T) {
	if err := protocol.Validate([]byte(`{"type":"PING"}`)); err != nil {
		t.Fatalf("unknown type should not be schema-checked: %v", err)
	}
	if err := protocol.Validate([]byte(`{not json`)); err == nil || !strings.Contains(err.Error(), "decode base") {
		t.Fatalf("malformed JSON error = %v", err)
	}
}
