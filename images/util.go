package images

import (
	"crypto/md5"
	"fmt"

	"gocv.io/x/gocv"
)

// ComputeMatChecksum returns a hex MD5 of the Mat's pixel data, or "empty".
//
// Example:
//
// ```go
//
//	before := ComputeMatChecksum(frame)
//	vis := pipeline.Render(frame)
//	// ComputeMatChecksum(frame) == before
//
// ```
func ComputeMatChecksum(mat gocv.Mat) string {
	if mat.Empty() {
		return "empty"
	}

	data, err := mat.DataPtrUint8()
	if err != nil {
		return "unreadable"
	}
	hash := md5.New()
	hash.Write(data)
	return fmt.Sprintf("%x", hash.Sum(nil))
}
