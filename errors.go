// Copyright 2017 Hajime Hoshi
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mp3

import "fmt"

// InvalidDataError reports a frame-granularity decode failure: bad sync,
// a reserved header field, a reservoir back-pointer past the buffer, or a
// bit read past the end of a side-info or main-data buffer. No Decoder
// method returns one: the resync loop absorbs soft decode failures itself,
// and a source exhausted mid-scan or a used-up resync limit is reported as
// io.EOF.
type InvalidDataError struct {
	Reason string
}

func (e *InvalidDataError) Error() string {
	return fmt.Sprintf("mp3: invalid data: %s", e.Reason)
}

// UnsupportedError reports a well-formed but unsupported frame: Layer I/II
// or free-format bitrate. It is handled identically to InvalidDataError by
// the resync loop (the frame is skipped) but kept as a distinct type so a
// caller inspecting a returned error with errors.As can tell the two apart.
type UnsupportedError struct {
	Reason string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("mp3: unsupported: %s", e.Reason)
}
