package entity

// Kind is the closed category an entity belongs to.
type Kind string

// Entity kinds, in enumeration order.
const (
	KindSensor            Kind = "sensor"
	KindBinarySensor      Kind = "binary_sensor"
	KindSwitch            Kind = "switch"
	KindNumber            Kind = "number"
	KindLight             Kind = "light"
	KindClimate           Kind = "climate"
	KindTextSensor        Kind = "text_sensor"
	KindFan               Kind = "fan"
	KindCover             Kind = "cover"
	KindSelect            Kind = "select"
	KindButton            Kind = "button"
	KindLock              Kind = "lock"
	KindValve             Kind = "valve"
	KindMediaPlayer       Kind = "media_player"
	KindAlarmControlPanel Kind = "alarm_control_panel"
	KindEvent             Kind = "event"
	KindUpdate            Kind = "update"
	KindDate              Kind = "date"
	KindTime              Kind = "time"
	KindDateTime          Kind = "datetime"
	KindText              Kind = "text"
)

// AllKinds lists every kind this codebase knows about, in enumeration order.
// Which of them a binary supports is decided at build time; see SupportedKinds.
var AllKinds = []Kind{
	KindSensor,
	KindBinarySensor,
	KindSwitch,
	KindNumber,
	KindLight,
	KindClimate,
	KindTextSensor,
	KindFan,
	KindCover,
	KindSelect,
	KindButton,
	KindLock,
	KindValve,
	KindMediaPlayer,
	KindAlarmControlPanel,
	KindEvent,
	KindUpdate,
	KindDate,
	KindTime,
	KindDateTime,
	KindText,
}

// supported is built once from compiledKinds, which lives in a build-tagged file.
var supported = func() map[Kind]bool {
	m := make(map[Kind]bool, len(compiledKinds))
	for _, k := range compiledKinds {
		m[k] = true
	}
	return m
}()

// SupportedKinds returns the kinds compiled into this binary, in enumeration order.
// The set is fixed for the lifetime of the process.
func SupportedKinds() []Kind {
	out := make([]Kind, 0, len(compiledKinds))
	for _, k := range AllKinds {
		if supported[k] {
			out = append(out, k)
		}
	}
	return out
}

// IsSupported reports whether kind k is compiled into this binary.
func (k Kind) IsSupported() bool {
	return supported[k]
}

// IsKnown reports whether k is one of AllKinds, compiled in or not.
func (k Kind) IsKnown() bool {
	for _, known := range AllKinds {
		if k == known {
			return true
		}
	}
	return false
}

func (k Kind) String() string {
	return string(k)
}
