package server

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/existflow/ironboard/internal/logger"
	"github.com/existflow/ironboard/internal/model"
	"github.com/existflow/ironboard/internal/query"
	"github.com/existflow/ironboard/internal/store"
)

func (s *Server) handleState(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.Snapshot())
}

// handleAction decodes one action envelope, dispatches it and returns the
// resulting state
func (s *Server) handleAction(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxActionSize))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "failed to read body").SetInternal(err)
	}

	a, err := store.DecodeAction(body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if a.Type() == store.TypeLoadInitialData {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "load_initial_data cannot be sent over the API"})
	}

	if err := s.store.Dispatch(a); err != nil {
		if errors.Is(err, store.ErrPersist) {
			logger.Error("Action applied but not persisted",
				logger.F("action", string(a.Type())),
				logger.F("error", err))
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, s.store.Snapshot())
}

func (s *Server) handleBoards(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.Snapshot().Boards)
}

func (s *Server) handleBoardColumns(c echo.Context) error {
	state := s.store.Snapshot()
	board, err := query.FindBoard(state.Boards, c.Param("id"))
	if err != nil || board.ID != c.Param("id") {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "board not found"})
	}
	return c.JSON(http.StatusOK, query.ColumnsForBoard(state.Columns, board.ID))
}

func (s *Server) handleColumnTasks(c echo.Context) error {
	filter, err := filterFromQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	state := s.store.Snapshot()
	column, err := query.FindColumn(state.Columns, c.Param("id"))
	if err != nil || column.ID != c.Param("id") {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "column not found"})
	}
	return c.JSON(http.StatusOK, filter.Apply(query.TasksForColumn(state.Tasks, column.ID)))
}

func (s *Server) handleSummary(c echo.Context) error {
	state := s.store.Snapshot()
	boards, columns, tasks := state.Boards, state.Columns, state.Tasks

	if id := c.QueryParam("board"); id != "" {
		board, err := query.FindBoard(state.Boards, id)
		if err != nil || board.ID != id {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "board not found"})
		}
		boards = []model.Board{board}
		columns = query.ColumnsForBoard(state.Columns, board.ID)
		tasks = query.TasksForBoard(state.Columns, state.Tasks, board.ID)
	}

	today := c.QueryParam("today")
	if today == "" {
		today = model.Today(s.now())
	} else if _, err := model.ParseDueDate(today); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, query.Summarize(boards, columns, tasks, today))
}

// filterFromQuery reads q, priority and due
func filterFromQuery(c echo.Context) (query.Filter, error) {
	f := query.Filter{
		Search:   c.QueryParam("q"),
		Priority: query.PriorityAll,
	}
	if p := c.QueryParam("priority"); p != "" && !strings.EqualFold(p, query.PriorityAll) {
		parsed, err := model.ParsePriority(p)
		if err != nil {
			return query.Filter{}, err
		}
		f.Priority = string(parsed)
	}
	due, err := model.ParseDueDate(c.QueryParam("due"))
	if err != nil {
		return query.Filter{}, err
	}
	f.DueDate = due
	return f, nil
}
