//go:build !minimal

package entity

// compiledKinds is the full kind set of the default build.
var compiledKinds = AllKinds
