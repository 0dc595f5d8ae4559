package cube

import "fmt"

//Error is the interface for gocube errors. In addition to the standard
//error interface, it allows decorating an error with the name of each
//function it passes through on its way up, plus any extra information.
//Each call returns the resulting decoration slice. If passed an empty
//string, Decorate just returns the current slice without adding to it.
type Error interface {
	Error() string
	Decorate(string) []string
}

//errDecorate asserts that err implements Error and decorates it with the
//caller's name before returning it. It will panic if used on a
//non-gocube error.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}

//FileError is the error type for cube files that cannot be decoded. It is
//always critical: a file that fails to decode aborts whatever analysis
//needed it.
type FileError struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err FileError) Error() string {
	return fmt.Sprintf("cube file %s error: %s", err.filename, err.message)
}

//Decorate adds new information to the error
func (E FileError) Decorate(deco string) []string {
	//Even though this method does not use a pointer as a receiver, and tries to alter the receiver,
	//it should work, since E.deco is a slice, and hence a pointer itself.
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//FileName returns the file the failing grid was read from
func (err FileError) FileName() string { return err.filename }

//Format returns the format of the file associated to the error (always "cube")
func (err FileError) Format() string { return "cube" }

//Critical returns true if the error is critical, false otherwise
func (err FileError) Critical() bool { return err.critical }

//GeomError reports that two grids do not share the same geometry. It names
//the offending field and carries both conflicting values, verbatim, so the
//caller can report exactly what differs.
type GeomError struct {
	field string //"counts", "origin" or axes
	a, b  string //the two conflicting values, already formatted
	deco  []string
}

func (err GeomError) Error() string {
	return fmt.Sprintf("grid geometry mismatch in %s: %s vs %s", err.field, err.a, err.b)
}

//Decorate adds new information to the error
func (E GeomError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//Field returns the name of the mismatched geometry field.
func (err GeomError) Field() string { return err.field }

//Values returns both conflicting values, formatted.
func (err GeomError) Values() (string, string) { return err.a, err.b }
