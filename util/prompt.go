package util

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

func readAnswer(in *bufio.Reader) (string, error) {
	response, err := in.ReadString('\n')
	if err != nil && (err != io.EOF || response == "") {
		return "", err
	}
	return strings.TrimSpace(response), nil
}

func PromptString(in *bufio.Reader, out io.Writer, prompt string, def string) (string, error) {
	fmt.Fprintf(out, "%s (%s): ", prompt, def)

	response, err := readAnswer(in)
	if err != nil {
		return "", err
	}

	if response == "" {
		return def, nil
	}

	return response, nil
}

func PromptYN(in *bufio.Reader, out io.Writer, prompt string, def bool) (bool, error) {
	if def {
		fmt.Fprintf(out, "%s (Y/n): ", prompt)
	} else {
		fmt.Fprintf(out, "%s (y/N): ", prompt)
	}

	response, err := readAnswer(in)
	if err != nil {
		return false, err
	}

	if response == "" {
		return def, nil
	}

	return strings.ToLower(response) == "y", nil
}
