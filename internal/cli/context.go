package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/existflow/ironboard/internal/config"
	"github.com/existflow/ironboard/internal/model"
	"github.com/existflow/ironboard/internal/query"
)

// Context file path
func contextFilePath() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "context"), nil
}

// currentBoard returns the id of the board set with 'board use', if any
func currentBoard() string {
	path, err := contextFilePath()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// setCurrentBoard saves the current board id; empty clears it
func setCurrentBoard(boardID string) error {
	path, err := contextFilePath()
	if err != nil {
		return err
	}
	if boardID == "" {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(boardID), 0644)
}

var errNoBoard = errors.New("no board given and no current board set (see 'ironboard board use')")

// resolveBoard finds the board named by ref, falling back to the current board
func resolveBoard(boards []model.Board, ref string) (model.Board, error) {
	if ref == "" {
		ref = currentBoard()
		if ref == "" {
			return model.Board{}, errNoBoard
		}
	}
	return query.FindBoard(boards, ref)
}
