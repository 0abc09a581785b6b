package gfsi

import (
	"context"
	"sync/atomic"
)

var header2022 = []string{"Rank", "Country", "Overall score", "Affordability", "Availability", "Quality and Safety"}

func raw2019(rows ...[]string) [][]string {
	return append([][]string{{"Global Food Security Index 2019"}}, rows...)
}

func raw2022(rows ...[]string) [][]string {
	return append([][]string{header2022}, rows...)
}

type fakeSource struct {
	calls atomic.Int32
	y2019 [][]string
	y2022 [][]string
	err   error
}

func (s *fakeSource) Frames(context.Context) (Frame, Frame, error) {
	s.calls.Add(1)
	if s.err != nil {
		return Frame{}, Frame{}, s.err
	}
	a, err := Normalize2019(s.y2019)
	if err != nil {
		return Frame{}, Frame{}, err
	}
	b, err := Normalize2022(s.y2022)
	if err != nil {
		return Frame{}, Frame{}, err
	}
	return a, b, nil
}
