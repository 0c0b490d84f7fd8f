// Copyright 2021 - 2022 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package moerr

// mysql error codes surfaced to clients.
const (
	ER_DB_CREATE_EXISTS uint16 = 1007
	ER_BAD_DB_ERROR     uint16 = 1049
	ER_UNKNOWN_ERROR    uint16 = 1105
)
