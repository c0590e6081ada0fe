package metatiled

import (
	"context"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp" // register BMP decoder
)

const maxWorkers = 10

// MaskSuffix is appended to the base name of a map to find its collision
// mask when converting in bulk.
const MaskSuffix = "_mask"

// DecodeFile decodes the image in file.
func DecodeFile(file string) (image.Image, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func findMask(file string) (string, bool) {
	mask := filepath.Join(filepath.Dir(file), BaseName(file)+MaskSuffix+filepath.Ext(file))
	info, err := os.Stat(mask)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return mask, true
}

func (m *MetaTiled) findImages(ctx context.Context, files []string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for _, file := range files {
			abs, err := filepath.Abs(file)
			if err != nil {
				errc <- err
				return
			}

			select {
			case out <- abs:
			case <-ctx.Done():
				errc <- errors.New("conversion cancelled")
				return
			}
		}
	}()
	return out, errc, nil
}

// ConvertFile converts the map in file and saves the project beside it.
func (m *MetaTiled) ConvertFile(file string, opts Options, save SaveOptions) error {
	img, err := DecodeFile(file)
	if err != nil {
		return err
	}

	if opts.Mask == nil && opts.Descriptor != nil && len(opts.Descriptor.Collisions) > 0 {
		if mask, ok := findMask(file); ok {
			m.logger.Printf("Using collision mask \"%s\"\n", mask)
			if opts.Mask, err = DecodeFile(mask); err != nil {
				return err
			}
		}
	}

	r, err := m.Convert(img, opts)
	if err != nil {
		return err
	}

	return m.Save(filepath.Dir(file), BaseName(file), r, save)
}

func (m *MetaTiled) imageWorker(ctx context.Context, in <-chan string, opts Options, save SaveOptions) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			select {
			case <-ctx.Done():
				return
			default:
			}

			if err := m.ConvertFile(file, opts, save); err != nil {
				errc <- &FileError{File: file, Err: err}
				return
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// ConvertAll converts every map in files, writing each project into the
// directory holding its image. The first failure stops the remaining
// conversions. A map named "name" uses "name_mask" beside it as its
// collision mask when the descriptor has a collision legend.
func (m *MetaTiled) ConvertAll(files []string, opts Options, save SaveOptions) error {
	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	images, errc, err := m.findImages(ctx, files)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	workers := len(files)
	if workers > maxWorkers {
		workers = maxWorkers
	}

	for i := 0; i < workers; i++ {
		errc, err := m.imageWorker(ctx, images, opts, save)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
