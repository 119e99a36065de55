//go:build minimal

package entity

// compiledKinds is the reduced kind set selected with -tags minimal.
var compiledKinds = []Kind{
	KindSensor,
	KindBinarySensor,
	KindSwitch,
}
