// this code is from https://github.com/brunocalza/go-bustub
// there is license and copyright notice in licenses/go-bustub dir

package types

import (
	"fmt"

	"github.com/spaolacci/murmur3"
)

// PageID identifies the page a record lives on.
type PageID int32

// InvalidPageID represents an invalid page id.
const InvalidPageID PageID = -1

// RID identifies a record by the page it lives on and its slot within that
// page. It is comparable, so it is usable directly as a map key - the
// property the lock manager's RecordId type parameter requires.
type RID struct {
	PageID PageID
	Slot   uint32
}

func NewRID(pageID PageID, slot uint32) RID {
	return RID{PageID: pageID, Slot: slot}
}

func (r RID) String() string {
	return fmt.Sprintf("%d:%d", r.PageID, r.Slot)
}

// Hash returns a 64-bit digest of the RID, handy for sharding a lock table
// across multiple latches or for bucketing metrics by record.
func (r RID) Hash() uint64 {
	buf := []byte(r.String())
	return murmur3.Sum64(buf)
}
