/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package proto

import (
	"encoding/json"
	"math"
	"testing"
)

func TestFloatMarshal(t *testing.T) {
	tt := []struct {
		val  float64
		want string
	}{
		{8, "8.0"},
		{-6, "-6.0"},
		{0, "0.0"},
		{2.5, "2.5"},
		{0.30000000000000004, "0.30000000000000004"},
		{1e20, "1e+20"},
		{0.00001, "1e-05"},
	}

	for _, tc := range tt {
		b, err := json.Marshal(Float(tc.val))
		if err != nil {
			t.Errorf("%v: unexpected error %s", tc.val, err)
			continue
		}
		if string(b) != tc.want {
			t.Errorf("wanted %s, got %s", tc.want, b)
		}
	}

	if _, err := json.Marshal(Float(math.Inf(1))); err == nil {
		t.Error("+Inf should not marshal")
	}
	if _, err := json.Marshal(Float(math.NaN())); err == nil {
		t.Error("NaN should not marshal")
	}
}

func TestCalculateResponseJSON(t *testing.T) {
	b, err := json.Marshal(CalculateResponse{Expression: "5+3", Result: 8})
	if err != nil {
		t.Fatal(err)
	}

	want := `{"expression":"5+3","result":8.0}`
	if string(b) != want {
		t.Errorf("wanted %s, got %s", want, b)
	}

	resp := CalculateResponse{}
	if err := json.Unmarshal(b, &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Result != 8 {
		t.Errorf("wanted 8, got %v", resp.Result)
	}
}

func TestParseCalculateRequest(t *testing.T) {
	expr, err := ParseCalculateRequest([]byte(`{"calculate": "10*2+5"}`))
	if err != nil {
		t.Fatal(err)
	}
	if expr != "10*2+5" {
		t.Errorf("wanted 10*2+5, got %s", expr)
	}

	for _, body := range []string{`{}`, `{"calculate": null}`, `{"calculate": 5}`, `not json`} {
		if _, err := ParseCalculateRequest([]byte(body)); err == nil {
			t.Errorf("%s should have been rejected", body)
		}
	}
}
