package datapipe

import (
	"sort"
	"strings"

	"github.com/datapipe/xzreader/pkg/storages/storage"
	"github.com/pkg/errors"
)

// FolderSource lists a storage folder recursively and opens its objects one by
// one, in name order, as they are pulled.
type FolderSource struct {
	folder storage.Folder
	filter func(name string) bool
}

func NewFolderSource(folder storage.Folder, filter func(name string) bool) *FolderSource {
	if filter == nil {
		filter = func(string) bool { return true }
	}
	return &FolderSource{folder: folder, filter: filter}
}

// ExtensionFilter keeps objects whose name ends with ".<extension>".
func ExtensionFilter(extension string) func(name string) bool {
	suffix := "." + extension
	return func(name string) bool {
		return strings.HasSuffix(name, suffix)
	}
}

func (source *FolderSource) Iter() Iterator {
	return &folderIterator{folder: source.folder, source: source}
}

// List takes one listing of the folder. Traversals of the returned Listing
// open exactly the listed objects, however the folder changes afterwards.
func (source *FolderSource) List() (*Listing, error) {
	names, err := source.Names()
	if err != nil {
		return nil, err
	}
	return &Listing{folder: source.folder, Names: names}, nil
}

// Names lists the object names a traversal would open.
func (source *FolderSource) Names() ([]string, error) {
	objects, err := storage.ListFolderRecursively(source.folder)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list folder '%s'", source.folder.GetPath())
	}
	names := make([]string, 0, len(objects))
	for _, object := range objects {
		if source.filter(object.GetName()) {
			names = append(names, object.GetName())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Listing is a FolderSource frozen to one listing.
type Listing struct {
	folder storage.Folder
	Names  []string
}

func (listing *Listing) Iter() Iterator {
	return &folderIterator{folder: listing.folder, names: listing.Names, listed: true}
}

type folderIterator struct {
	folder   storage.Folder
	source   *FolderSource
	names    []string
	listed   bool
	position int
}

func (iterator *folderIterator) Next() (interface{}, bool, error) {
	if !iterator.listed {
		names, err := iterator.source.Names()
		if err != nil {
			return nil, false, err
		}
		iterator.names = names
		iterator.listed = true
	}
	if iterator.position >= len(iterator.names) {
		return nil, false, nil
	}
	name := iterator.names[iterator.position]
	iterator.position++

	reader, err := iterator.folder.ReadObject(name)
	if err != nil {
		return nil, false, err
	}
	return LabeledStream{Name: name, Stream: reader}, true, nil
}
