/*
Package version defines the API versions handlers declare and requests ask for.

A [Version] is an immutable major.minor.revision triple ordered numerically,
component by component. [Parse] accepts partial forms, so "2" is 2.0.0 and
"2.3" is 2.3.0.

A [Range] is a contiguous set of versions with an independently inclusive,
exclusive, or absent bound on either side; a [Singleton] holds exactly one version.
A [RangeSet] is the union of several ranges and is what a handler accepts:
a version is acceptable if any member range contains it.

Handlers declare what they accept through a [Spec]:

	version.Only("1.0", "3.1")             // exactly 1.0.0 or 3.1.0
	version.Bounds{GreaterThan: "1.0"}     // (1.0.0..+∞)
	version.Bounds{AtLeast: "1.0", LessThan: "2.0"} // [1.0.0..2.0.0)

A [Declaration] is the flat, serializable form of the same information,
suitable for route tables kept in YAML or JSON.
*/
package version
