// Copyright 2017-25 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"fmt"
	"io"
	"os"

	pb "gopkg.in/cheggaaa/pb.v1"
)

// progressReader is an io.ReadCloser that drives a terminal progress bar
// as bytes are read from the delegate. Closing it closes the delegate
// and clears the progress line.
type progressReader struct {
	r   io.ReadCloser
	bar *pb.ProgressBar
}

// WrapInputFile wraps f in a progress-reporting io.ReadCloser sized to
// f's total length. Stdin is returned unwrapped, since its length is
// unknown and a progress bar against it would be meaningless.
func WrapInputFile(f *os.File) (io.ReadCloser, error) {
	if f == os.Stdin {
		return os.Stdin, nil
	}

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	bar := pb.New(int(fi.Size())).SetUnits(pb.U_BYTES_DEC).SetWidth(79)
	bar.Output = os.Stderr
	bar.Start()

	return progressReader{r: bar.NewProxyReader(f), bar: bar}, nil
}

func (p progressReader) Read(buf []byte) (int, error) {
	return p.r.Read(buf)
}

// Close closes the delegate reader and clears the progress bar's
// terminal line without printing a trailing newline.
func (p progressReader) Close() error {
	p.bar.Output = nil
	p.bar.NotPrint = true
	p.bar.Finish()

	fmt.Fprint(os.Stderr, "\033[2K\r")

	return p.r.Close()
}
