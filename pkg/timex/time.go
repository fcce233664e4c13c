package timex

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const timeFormat = "2006-01-02 15:04:05"

// Time is a time.Time wrapper that serializes as "2006-01-02 15:04:05"
// both in JSON and in the database.
// Time 是 time.Time 的包装类型，JSON 与数据库序列化均使用 "2006-01-02 15:04:05" 格式。
type Time time.Time

// Now returns the current time as a timex.Time
// Now 返回当前时间
func Now() Time {
	return Time(time.Now())
}

func (t Time) MarshalJSON() ([]byte, error) {
	tt := time.Time(t)
	if tt.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", tt.Format(timeFormat))), nil
}

func (t *Time) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == `""` || s == "null" {
		*t = Time(time.Time{})
		return nil
	}
	tt, err := time.ParseInLocation(`"`+timeFormat+`"`, s, time.Local)
	if err != nil {
		return err
	}
	*t = Time(tt)
	return nil
}

// Value implements driver.Valuer for gorm
// Value 实现 driver.Valuer 接口，供 gorm 写库使用
func (t Time) Value() (driver.Value, error) {
	tt := time.Time(t)
	if tt.IsZero() {
		return nil, nil
	}
	return tt, nil
}

// Scan implements sql.Scanner for gorm
// Scan 实现 sql.Scanner 接口，供 gorm 读库使用
func (t *Time) Scan(v interface{}) error {
	switch value := v.(type) {
	case time.Time:
		*t = Time(value)
		return nil
	case []byte:
		tt, err := time.ParseInLocation(timeFormat, string(value), time.Local)
		if err != nil {
			return err
		}
		*t = Time(tt)
		return nil
	case string:
		tt, err := time.ParseInLocation(timeFormat, value, time.Local)
		if err != nil {
			return err
		}
		*t = Time(tt)
		return nil
	case nil:
		*t = Time(time.Time{})
		return nil
	}
	return fmt.Errorf("can not convert %v to timex.Time", v)
}

func (t Time) String() string {
	return time.Time(t).Format(timeFormat)
}

func (t Time) IsZero() bool {
	return time.Time(t).IsZero()
}

func (t Time) Unix() int64 {
	return time.Time(t).Unix()
}

func (t Time) UnixMilli() int64 {
	return time.Time(t).UnixMilli()
}

func (t Time) UnixMicro() int64 {
	return time.Time(t).UnixMicro()
}

func (t Time) UnixNano() int64 {
	return time.Time(t).UnixNano()
}
