package dct

import (
	"fmt"

	cube "github.com/rmera/gocube"
)

//errDecorate is a helper function that asserts that the error implements
//cube.Error and decorates the error with the caller's name before
//returning it. If used with a non-gocube error, it will cause a panic.
func errDecorate(err error, caller string) error {
	err2 := err.(cube.Error)
	err2.Decorate(caller)
	return err2
}

//Error is the general error type of the dct package. It fulfills cube.Error.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("dct error: %s", err.message)
}

//Decorate adds new information to the error
func (E Error) Decorate(deco string) []string {
	//Even though this method does not use a pointer as a receiver, and tries to alter the receiver,
	//it should work, since E.deco is a slice, and hence a pointer itself.
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

//ZeroTransferError is the interface for the degenerate case where one side
//of the density difference integrates to exactly zero charge (for instance,
//when both input grids are identical). It has a useless method to
//distinguish it from actual failures in a type switch: a zero transfer is a
//legitimate physical outcome, it just leaves the centroids, and thus DCT,
//undefined.
type ZeroTransferError interface {
	cube.Error
	Critical() bool
	NormalZeroTransfer() //does nothing, just to separate this interface from other errors
}

//zeroTransferError implements ZeroTransferError
type zeroTransferError struct {
	side string //"gained" or "lost"
	deco []string
}

//NormalZeroTransfer does nothing
func (E zeroTransferError) NormalZeroTransfer() {}

func (E zeroTransferError) Error() string {
	return fmt.Sprintf("no charge is %s between the two states: the transfer centroids are undefined", E.side)
}

//Critical returns false: a zero transfer is not a failure.
func (E zeroTransferError) Critical() bool { return false }

//Side returns which side of the density difference vanished, "gained" or "lost".
func (E zeroTransferError) Side() string { return E.side }

func (E zeroTransferError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newZeroTransferError(side string) ZeroTransferError {
	e := new(zeroTransferError)
	e.side = side
	e.deco = []string{"Result"}
	return e
}
