// Package calcium is a small symbolic algebra engine: it parses infix
// expressions into immutable trees and provides numeric evaluation,
// symbolic differentiation, rule-based integration and a fixed-point
// simplifier over them.
//
// Arithmetic is plain float64 throughout. Expressions are built either
// with Parse or with the constructor functions:
//
//	f := calcium.Mul(calcium.Num(3), calcium.Pow(calcium.Var("x"), calcium.Num(2)))
//	df, _ := calcium.Differentiate(f, "x")
//	fmt.Println(df) // 6*x
package calcium
