//go:build !(linux || darwin)

package input

func adviseSequential([]byte) {}
