package constants

import "math/big"

var MaxUint256 = func() *big.Int {
	val := new(big.Int)
	val.SetString("115792089237316195423570985008687907853269984665640564039457584007913129639935", 10)
	return val
}()

// MaxUint160 is the largest amount Permit2 can track per approval.
var MaxUint160 = func() *big.Int {
	val := new(big.Int)
	val.SetString("1461501637330902918203684832716283019655932542975", 10)
	return val
}()
