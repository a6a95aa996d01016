// Copyright 2025 kimchim00
// Licensed under the MIT license. See license text in the LICENSE file.

package detect_test

import (
	"testing"

	"github.com/kimchim00/rs232sim/detect"
)

func TestRegisterSignals(t *testing.T) {
	counts := map[string]int{
		"xmit_state":    10,
		"watch_state":   0,
		"bit_cell_cntr": 500,
		"xmit_shftreg":  80,
		"serial_out":    40,
		"data_in":       12,
		"rst_n":         1,
	}
	regs := detect.RegisterSignals(counts)
	for _, want := range []string{"xmit_state", "watch_state", "bit_cell_cntr", "xmit_shftreg"} {
		if _, ok := regs[want]; !ok {
			t.Errorf("%s not classified as a register", want)
		}
	}
	for _, not := range []string{"serial_out", "data_in", "rst_n"} {
		if _, ok := regs[not]; ok {
			t.Errorf("%s wrongly classified as a register", not)
		}
	}
}

func TestAnalyze_dormant_trigger(t *testing.T) {
	// a healthy design with one silent register
	counts := map[string]int{
		"bit_cell_cntr": 4000,
		"bit_cntr":      600,
		"xmit_state":    700,
		"xmit_shftreg":  500,
		"watch_state":   0,
	}
	r := detect.Analyze(counts, detect.DefaultParams())
	if r.Signals != 5 || r.Min != 0 || r.Max != 4000 {
		t.Fatalf("bad stats: %+v", r)
	}
	if len(r.Candidates) != 1 {
		t.Fatalf("candidates = %+v, want exactly watch_state", r.Candidates)
	}
	c := r.Candidates[0]
	if c.Signal != "watch_state" || c.Transitions != 0 || c.Ratio != 0 {
		t.Fatalf("bad candidate: %+v", c)
	}
}

func TestAnalyze_low_activity(t *testing.T) {
	// an active (armed) trigger still switches far less than the datapath
	counts := map[string]int{
		"a_reg": 1000, "b_reg": 1100, "c_reg": 900, "d_reg": 1050,
		"e_reg": 950, "f_reg": 1000, "g_reg": 980, "h_reg": 1020,
		"i_reg": 990, "trojan_state": 8,
	}
	r := detect.Analyze(counts, detect.DefaultParams())
	if len(r.Candidates) != 1 || r.Candidates[0].Signal != "trojan_state" {
		t.Fatalf("candidates = %+v", r.Candidates)
	}
	if r.Candidates[0].Ratio >= 0.1 {
		t.Fatalf("ratio = %v, want < 0.1", r.Candidates[0].Ratio)
	}
}

func TestAnalyze_uniform_activity(t *testing.T) {
	counts := map[string]int{"a": 100, "b": 100, "c": 100, "d": 100}
	r := detect.Analyze(counts, detect.DefaultParams())
	if len(r.Candidates) != 0 {
		t.Fatalf("uniform design produced candidates: %+v", r.Candidates)
	}
}

func TestAnalyze_empty(t *testing.T) {
	r := detect.Analyze(nil, detect.DefaultParams())
	if r.Signals != 0 || len(r.Candidates) != 0 {
		t.Fatalf("bad empty report: %+v", r)
	}
}
