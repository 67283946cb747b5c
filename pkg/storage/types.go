package storage

import (
	"fmt"
	"path"
	"time"
)

// DiskStorage keeps catalog files under RootFolder/Country.
type DiskStorage struct {
	Country    string
	RootFolder string
}

func NewDiskStorage(country, rootFolder string) *DiskStorage {
	return &DiskStorage{
		Country:    country,
		RootFolder: rootFolder,
	}
}

// GetFileName returns the final path and a unique temporary path next to
// it. Writers fill the temporary file and rename it into place.
func (ds *DiskStorage) GetFileName(name string) (string, string) {
	fileName := path.Join(ds.RootFolder, ds.Country, name)
	return fileName, tmpName(fileName)
}

func tmpName(fileName string) string {
	return fileName + ".tmp-" + fmt.Sprintf("%d", time.Now().UnixMilli())
}
