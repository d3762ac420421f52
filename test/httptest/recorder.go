// Copyright 2026 Harald Albrecht.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

/*
Package httptest wraps the standard library's httptest.ResponseRecorder in order
to fail any test doing superfluous response.WriteHeader calls, or sending a
response without having set its Content-Type beforehand.
*/
package httptest

import (
	stdhttptest "net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// StrictResponseRecorder wraps httptest.ResponseRecorder in order to fail
// tests doing superfluous WriteHeader calls or forgetting about the
// Content-Type header.
type StrictResponseRecorder struct {
	*stdhttptest.ResponseRecorder
	wroteHeader bool
}

// NewRecorder returns a new strict test response recorder.
func NewRecorder() *StrictResponseRecorder {
	return &StrictResponseRecorder{
		ResponseRecorder: stdhttptest.NewRecorder(),
	}
}

// WriteHeader implements http.ResponseWriter, failing tests that do
// superfluous WriteHeader calls, or that didn't set a Content-Type header.
func (w *StrictResponseRecorder) WriteHeader(code int) {
	GinkgoHelper()
	Expect(w.wroteHeader).To(BeFalse(), "superfluous response.WriteHeader call")
	Expect(w.Header().Get("Content-Type")).NotTo(BeEmpty(),
		"response.WriteHeader without Content-Type")
	w.wroteHeader = true
	w.ResponseRecorder.WriteHeader(code)
}

// Write implements http.ResponseWriter, failing tests that write a response
// body without explicitly calling WriteHeader first.
func (w *StrictResponseRecorder) Write(b []byte) (int, error) {
	GinkgoHelper()
	Expect(w.wroteHeader).To(BeTrue(), "response.Write without explicit response.WriteHeader")
	return w.ResponseRecorder.Write(b)
}
