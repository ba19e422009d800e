// Copyright 2026 Arcentra Authors.
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

package rollover

import (
	"fmt"
	"strings"
	"time"
)

type field uint8

const (
	fieldLiteral field = iota
	fieldYear4
	fieldYear2
	fieldMonth
	fieldDay
	fieldHour
	fieldMinute
	fieldSecond
	fieldMillis
)

func (f field) width() int {
	switch f {
	case fieldYear4:
		return 4
	case fieldMillis:
		return 3
	default:
		return 2
	}
}

type token struct {
	field   field
	literal string
}

// datePattern is a compiled date pattern using the yyyy, yy, MM, dd, HH, mm, ss
// and SSS letters. Text inside single quotes and any non-letter is copied verbatim.
// Go layouts are not used because they cannot express milliseconds without a
// leading separator, which the HHmmssSSS backup suffix needs.
type datePattern struct {
	source string
	tokens []token
}

func compilePattern(p string) (*datePattern, error) {
	if p == "" {
		return nil, fmt.Errorf("empty date pattern")
	}
	dp := &datePattern{source: p}
	for i := 0; i < len(p); {
		c := p[i]
		switch {
		case c == '\'':
			end := i + 1
			for end < len(p) && p[end] != '\'' {
				end++
			}
			if end >= len(p) {
				return nil, fmt.Errorf("unterminated quote in %q", p)
			}
			if end == i+1 {
				dp.addLiteral("'")
			} else {
				dp.addLiteral(p[i+1 : end])
			}
			i = end + 1
		case isLetter(c):
			n := 1
			for i+n < len(p) && p[i+n] == c {
				n++
			}
			f, err := letterField(c, n)
			if err != nil {
				return nil, fmt.Errorf("%w in %q", err, p)
			}
			dp.tokens = append(dp.tokens, token{field: f})
			i += n
		default:
			dp.addLiteral(p[i : i+1])
			i++
		}
	}
	return dp, nil
}

func (dp *datePattern) addLiteral(s string) {
	if n := len(dp.tokens); n > 0 && dp.tokens[n-1].field == fieldLiteral {
		dp.tokens[n-1].literal += s
		return
	}
	dp.tokens = append(dp.tokens, token{field: fieldLiteral, literal: s})
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func letterField(c byte, n int) (field, error) {
	switch {
	case c == 'y' && n == 4:
		return fieldYear4, nil
	case c == 'y' && n == 2:
		return fieldYear2, nil
	case c == 'M' && n == 2:
		return fieldMonth, nil
	case c == 'd' && n == 2:
		return fieldDay, nil
	case c == 'H' && n == 2:
		return fieldHour, nil
	case c == 'm' && n == 2:
		return fieldMinute, nil
	case c == 's' && n == 2:
		return fieldSecond, nil
	case c == 'S' && n == 3:
		return fieldMillis, nil
	}
	return fieldLiteral, fmt.Errorf("unsupported pattern letters %q", strings.Repeat(string(c), n))
}

// appendFormat appends t rendered with the pattern to dst.
func (dp *datePattern) appendFormat(dst []byte, t time.Time) []byte {
	for _, tok := range dp.tokens {
		switch tok.field {
		case fieldLiteral:
			dst = append(dst, tok.literal...)
		case fieldYear4:
			dst = appendDigits(dst, t.Year(), 4)
		case fieldYear2:
			dst = appendDigits(dst, t.Year()%100, 2)
		case fieldMonth:
			dst = appendDigits(dst, int(t.Month()), 2)
		case fieldDay:
			dst = appendDigits(dst, t.Day(), 2)
		case fieldHour:
			dst = appendDigits(dst, t.Hour(), 2)
		case fieldMinute:
			dst = appendDigits(dst, t.Minute(), 2)
		case fieldSecond:
			dst = appendDigits(dst, t.Second(), 2)
		case fieldMillis:
			dst = appendDigits(dst, t.Nanosecond()/int(time.Millisecond), 3)
		}
	}
	return dst
}

func (dp *datePattern) format(t time.Time) string {
	return string(dp.appendFormat(make([]byte, 0, 32), t))
}

func appendDigits(dst []byte, v, width int) []byte {
	var d [4]byte
	for i := width - 1; i >= 0; i-- {
		d[i] = byte('0' + v%10)
		v /= 10
	}
	return append(dst, d[:width]...)
}

// parsePrefix parses a date rendered with the pattern at the start of s and
// returns the time and the number of bytes consumed.
func (dp *datePattern) parsePrefix(s string, loc *time.Location) (time.Time, int, bool) {
	year, month, day := 1970, 1, 1
	var hour, minute, sec, millis int
	pos := 0
	for _, tok := range dp.tokens {
		if tok.field == fieldLiteral {
			if len(s)-pos < len(tok.literal) || s[pos:pos+len(tok.literal)] != tok.literal {
				return time.Time{}, 0, false
			}
			pos += len(tok.literal)
			continue
		}
		w := tok.field.width()
		if len(s)-pos < w {
			return time.Time{}, 0, false
		}
		v := 0
		for i := 0; i < w; i++ {
			c := s[pos+i]
			if c < '0' || c > '9' {
				return time.Time{}, 0, false
			}
			v = v*10 + int(c-'0')
		}
		pos += w
		switch tok.field {
		case fieldYear4:
			year = v
		case fieldYear2:
			year = 2000 + v
		case fieldMonth:
			month = v
		case fieldDay:
			day = v
		case fieldHour:
			hour = v
		case fieldMinute:
			minute = v
		case fieldSecond:
			sec = v
		case fieldMillis:
			millis = v
		}
	}
	return time.Date(year, time.Month(month), day, hour, minute, sec, millis*int(time.Millisecond), loc), pos, true
}

// hasCalendarDate reports whether the pattern pins down a full calendar day.
func (dp *datePattern) hasCalendarDate() bool {
	var y, m, d bool
	for _, tok := range dp.tokens {
		switch tok.field {
		case fieldYear4, fieldYear2:
			y = true
		case fieldMonth:
			m = true
		case fieldDay:
			d = true
		}
	}
	return y && m && d
}

// finest returns the smallest time unit rendered by the pattern.
func (dp *datePattern) finest() field {
	finest := fieldLiteral
	for _, tok := range dp.tokens {
		f := tok.field
		if f == fieldYear2 {
			f = fieldYear4
		}
		if f > finest {
			finest = f
		}
	}
	return finest
}
