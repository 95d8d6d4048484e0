// Package library resolves the normalized library layout: the Shows, Movies,
// and Music control folders under a root, reserved-path checks for inputs,
// and the per-show destination paths the rebuilder links into.
package library
