package prompt

import (
	"errors"
	"fmt"
	"io"
)

// MaxPathAttempts bounds how many output paths the user may offer.
const MaxPathAttempts = 3

// ErrTooManyAttempts is returned when no usable output path was given.
var ErrTooManyAttempts = errors.New("maximum attempts reached for creating a new file")

// ChooseOutputPath asks for a path that exists reports as free. A blank or
// taken answer prints a notice to w and uses up an attempt.
func ChooseOutputPath(p Prompter, w io.Writer, exists func(string) bool) (string, error) {
	for attempt := 1; attempt <= MaxPathAttempts; attempt++ {
		path, err := p.Text("Enter a file path to store the csv file (.csv):")
		if err != nil {
			return "", err
		}

		switch {
		case path == "":
			fmt.Fprintln(w, "Please enter a file path.")
		case exists(path):
			fmt.Fprintln(w, "File path already exists. Please enter an unique file name.")
		default:
			return path, nil
		}
	}
	return "", ErrTooManyAttempts
}
