package cache

import "github.com/a-Gb/hankerlytics/pkg/model"

// Diff summarizes what changed between a cached item set and a fresh
// fetch of the same thread or listing.
type Diff struct {
	Added   []int64 // ids present only in the fresh set
	Updated []int64 // ids in both whose content fingerprint changed
}

// Empty reports whether nothing was added or updated.
func (d Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Updated) == 0
}

// DiffItems compares two item sets id-by-id using the per-item content
// fingerprint. Items missing from the fresh set are not reported; the
// remote source rarely deletes and the viewer only surfaces what is new.
func DiffItems(old, fresh []model.Item) Diff {
	prints := make(map[int64]string, len(old))
	for i := range old {
		prints[old[i].ID] = old[i].Fingerprint()
	}

	var d Diff
	for i := range fresh {
		item := &fresh[i]
		prev, ok := prints[item.ID]
		switch {
		case !ok:
			d.Added = append(d.Added, item.ID)
		case prev != item.Fingerprint():
			d.Updated = append(d.Updated, item.ID)
		}
	}
	return d
}
