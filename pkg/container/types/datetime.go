// Copyright 2023 Matrix Origin
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
package types

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	gotime "time"

	"github.com/matrixorigin/extcatalog/pkg/common/moerr"
)

const (
	MinDatetimeYear = 1
	MaxDatetimeYear = 9999

	MinMonthInYear = 1
	MaxMonthInYear = 12

	maxHourInDay      = 23
	maxMinuteInHour   = 59
	maxSecondInMinute = 59
)

var (
	flatYearMonthDays = [12]uint8{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	leapYearMonthDays = [12]uint8{31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
)

// compactLayout is the go layout of the YYYYMMDDhhmmss form.
const compactLayout = "20060102150405"

// Datetime is a wall clock datetime without time zone, kept as its
// calendar components so that a literal survives unchanged until it is
// interpreted in a location.
type Datetime struct {
	Year        int32
	Month       uint8
	Day         uint8
	Hour        uint8
	Minute      uint8
	Second      uint8
	MicroSecond uint32
}

func FromClock(year int32, month, day, hour, min, sec uint8, msec uint32) Datetime {
	return Datetime{
		Year:        year,
		Month:       month,
		Day:         day,
		Hour:        hour,
		Minute:      min,
		Second:      sec,
		MicroSecond: msec,
	}
}

// ParseDatetime parses 'YYYY-MM-DD[ hh:mm:ss[.ffffff]]'.
func ParseDatetime(s string) (Datetime, error) {
	ctx := context.TODO()
	var dt Datetime
	datePart, timePart, hasTime := strings.Cut(strings.TrimSpace(s), " ")
	ymd := strings.Split(datePart, "-")
	if len(ymd) != 3 {
		return dt, moerr.NewInvalidInput(ctx, "invalid datetime value %s", s)
	}
	vals := make([]int, 0, 6)
	for _, p := range ymd {
		v, err := strconv.Atoi(p)
		if err != nil {
			return dt, moerr.NewInvalidInput(ctx, "invalid datetime value %s", s)
		}
		vals = append(vals, v)
	}
	var micro int
	if hasTime {
		clock, frac, hasFrac := strings.Cut(timePart, ".")
		hms := strings.Split(clock, ":")
		if len(hms) != 3 {
			return dt, moerr.NewInvalidInput(ctx, "invalid datetime value %s", s)
		}
		for _, p := range hms {
			v, err := strconv.Atoi(p)
			if err != nil {
				return dt, moerr.NewInvalidInput(ctx, "invalid datetime value %s", s)
			}
			vals = append(vals, v)
		}
		if hasFrac {
			if len(frac) == 0 || len(frac) > 6 || !allDigits(frac) {
				return dt, moerr.NewInvalidInput(ctx, "invalid datetime value %s", s)
			}
			micro, _ = strconv.Atoi(frac + strings.Repeat("0", 6-len(frac)))
		}
	} else {
		vals = append(vals, 0, 0, 0)
	}
	dt = FromClock(int32(vals[0]), uint8(vals[1]), uint8(vals[2]),
		uint8(vals[3]), uint8(vals[4]), uint8(vals[5]), uint32(micro))
	if vals[1] > 255 || vals[2] > 255 || vals[3] > 255 || vals[4] > 255 || vals[5] > 255 || !dt.Valid() {
		return Datetime{}, moerr.NewInvalidInput(ctx, "invalid datetime value %s", s)
	}
	return dt, nil
}

// Valid reports whether the components form a datetime in
// [0001-01-01 00:00:00, 9999-12-31 23:59:59].
func (dt Datetime) Valid() bool {
	return validDatetime(dt.Year, dt.Month, dt.Day) &&
		dt.Hour <= maxHourInDay && dt.Minute <= maxMinuteInHour && dt.Second <= maxSecondInMinute
}

func (dt Datetime) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d", dt.Year, dt.Month, dt.Day, dt.Hour, dt.Minute, dt.Second)
}

// Compact renders the zero padded YYYYMMDDhhmmss form. Components are not
// validated, an out of range component produces text that does not parse.
func (dt Datetime) Compact() string {
	return fmt.Sprintf("%04d%02d%02d%02d%02d%02d", dt.Year, dt.Month, dt.Day, dt.Hour, dt.Minute, dt.Second)
}

// UnixMilli interprets the datetime in loc and returns the milliseconds
// since the unix epoch. MicroSecond is ignored; callers that need it must
// check it is zero.
func (dt Datetime) UnixMilli(loc *gotime.Location) (int64, error) {
	t, err := gotime.ParseInLocation(compactLayout, dt.Compact(), loc)
	if err != nil {
		return 0, err
	}
	return t.UnixMilli(), nil
}

func (dt Datetime) ConvertToGoTime(loc *gotime.Location) gotime.Time {
	return gotime.Date(int(dt.Year), gotime.Month(dt.Month), int(dt.Day),
		int(dt.Hour), int(dt.Minute), int(dt.Second), int(dt.MicroSecond)*1000, loc)
}

func isLeap(year int32) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// date[0001-01-01 00:00:00 to 9999-12-31 23:59:59]
func validDatetime(year int32, month, day uint8) bool {
	if year >= MinDatetimeYear && year <= MaxDatetimeYear {
		if MinMonthInYear <= month && month <= MaxMonthInYear {
			if day > 0 {
				if isLeap(year) {
					return day <= leapYearMonthDays[month-1]
				} else {
					return day <= flatYearMonthDays[month-1]
				}
			}
		}
	}
	return false
}
