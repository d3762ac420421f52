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

package vanityserve

import (
	"errors"
	"io/fs"
	"net/http"
	"strconv"
)

// NormalizedHttpError writes a plain text HTTP error response with a status
// code derived from the specified error, without leaking any interesting
// internal server details from the error itself: anything missing becomes a
// 404, everything else a 500.
func NormalizedHttpError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, fs.ErrNotExist) {
		status = http.StatusNotFound
	}
	// Throw away any headers set in anticipation of a successful response,
	// such as a content length of a document we're not going to send.
	w.Header().Del("Content-Length")
	http.Error(w, strconv.Itoa(status)+" "+http.StatusText(status), status)
}
