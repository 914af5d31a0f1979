package services

import (
	"errors"
	"sort"

	"github.com/terraincognita07/grimoire/internal/models"
)

var errStubNotFound = errors.New("record not found")

type userRepositoryStub struct {
	users     map[uint]models.User
	nextID    uint
	findErr   error
	createErr error
	updateErr error
}

func newUserRepositoryStub() *userRepositoryStub {
	return &userRepositoryStub{users: make(map[uint]models.User), nextID: 1}
}

func (stub *userRepositoryStub) FindByEmail(email string) (models.User, error) {
	if stub.findErr != nil {
		return models.User{}, stub.findErr
	}
	for _, user := range stub.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, errStubNotFound
}

func (stub *userRepositoryStub) FindByID(userID uint) (models.User, error) {
	if stub.findErr != nil {
		return models.User{}, stub.findErr
	}
	user, ok := stub.users[userID]
	if !ok {
		return models.User{}, errStubNotFound
	}
	return user, nil
}

func (stub *userRepositoryStub) EmailInUse(email string) (bool, error) {
	_, err := stub.FindByEmail(email)
	if errors.Is(err, errStubNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (stub *userRepositoryStub) Create(user *models.User) error {
	if stub.createErr != nil {
		return stub.createErr
	}
	user.ID = stub.nextID
	stub.nextID++
	stub.users[user.ID] = *user
	return nil
}

func (stub *userRepositoryStub) UpdateProfileFields(userID uint, updates map[string]any) error {
	if stub.updateErr != nil {
		return stub.updateErr
	}
	user, ok := stub.users[userID]
	if !ok {
		return errStubNotFound
	}
	if value, ok := updates["savings"]; ok {
		user.Savings = value.(float64)
	}
	if value, ok := updates["current_phase"]; ok {
		user.CurrentPhase = value.(string)
	}
	if value, ok := updates["name"]; ok {
		name := value.(string)
		user.Name = &name
	}
	stub.users[userID] = user
	return nil
}

func (stub *userRepositoryStub) SetPasswordHash(userID uint, passwordHash string) error {
	if stub.updateErr != nil {
		return stub.updateErr
	}
	user, ok := stub.users[userID]
	if !ok {
		return errStubNotFound
	}
	user.PasswordHash = passwordHash
	stub.users[userID] = user
	return nil
}

type taskRepositoryStub struct {
	tasks     map[uint]models.Task
	nextID    uint
	listErr   error
	createErr error
	updateErr error
}

func newTaskRepositoryStub() *taskRepositoryStub {
	return &taskRepositoryStub{tasks: make(map[uint]models.Task), nextID: 1}
}

func (stub *taskRepositoryStub) ListByUser(userID uint, activeOnly bool) ([]models.Task, error) {
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	tasks := make([]models.Task, 0)
	for _, task := range stub.tasks {
		if task.UserID != userID || (activeOnly && !task.IsActive) {
			continue
		}
		tasks = append(tasks, task)
	}
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].SortOrder == tasks[j].SortOrder {
			return tasks[i].ID < tasks[j].ID
		}
		return tasks[i].SortOrder < tasks[j].SortOrder
	})
	return tasks, nil
}

func (stub *taskRepositoryStub) FindByIDForUser(taskID uint, userID uint) (models.Task, error) {
	task, ok := stub.tasks[taskID]
	if !ok || task.UserID != userID {
		return models.Task{}, errStubNotFound
	}
	return task, nil
}

func (stub *taskRepositoryStub) ExistsByKey(userID uint, taskKey string) (bool, error) {
	for _, task := range stub.tasks {
		if task.UserID == userID && task.TaskKey == taskKey {
			return true, nil
		}
	}
	return false, nil
}

func (stub *taskRepositoryStub) Create(task *models.Task) error {
	if stub.createErr != nil {
		return stub.createErr
	}
	task.ID = stub.nextID
	stub.nextID++
	stub.tasks[task.ID] = *task
	return nil
}

func (stub *taskRepositoryStub) UpdateByIDForUser(taskID uint, userID uint, updates map[string]any) (int64, error) {
	if stub.updateErr != nil {
		return 0, stub.updateErr
	}
	task, ok := stub.tasks[taskID]
	if !ok || task.UserID != userID {
		return 0, nil
	}
	for column, value := range updates {
		switch column {
		case "text":
			task.Text = value.(string)
		case "turn":
			task.Turn = value.(string)
		case "min_phase":
			task.MinPhase = value.(int)
		case "max_phase":
			if value == nil {
				task.MaxPhase = nil
			} else {
				maxPhase := value.(int)
				task.MaxPhase = &maxPhase
			}
		case "sort_order":
			task.SortOrder = value.(int)
		case "is_active":
			task.IsActive = value.(bool)
		}
	}
	stub.tasks[taskID] = task
	return 1, nil
}

func (stub *taskRepositoryStub) Deactivate(taskID uint, userID uint) (int64, error) {
	return stub.UpdateByIDForUser(taskID, userID, map[string]any{"is_active": false})
}

type checkKey struct {
	userID uint
	taskID uint
	date   string
}

type checkRepositoryStub struct {
	checks    map[checkKey]models.DailyCheck
	nextID    uint
	toggleErr error
}

func newCheckRepositoryStub() *checkRepositoryStub {
	return &checkRepositoryStub{checks: make(map[checkKey]models.DailyCheck), nextID: 1}
}

func (stub *checkRepositoryStub) ListByUserAndDate(userID uint, checkDate string) ([]models.DailyCheck, error) {
	checks := make([]models.DailyCheck, 0)
	for key, check := range stub.checks {
		if key.userID == userID && key.date == checkDate {
			checks = append(checks, check)
		}
	}
	sort.Slice(checks, func(i, j int) bool { return checks[i].ID < checks[j].ID })
	return checks, nil
}

func (stub *checkRepositoryStub) Toggle(userID uint, taskID uint, checkDate string, completed *bool) (models.DailyCheck, bool, error) {
	if stub.toggleErr != nil {
		return models.DailyCheck{}, false, stub.toggleErr
	}
	key := checkKey{userID: userID, taskID: taskID, date: checkDate}
	check, exists := stub.checks[key]
	if !exists {
		check = models.DailyCheck{ID: stub.nextID, UserID: userID, TaskID: taskID, CheckDate: checkDate, IsCompleted: true}
		stub.nextID++
		if completed != nil {
			check.IsCompleted = *completed
		}
	} else if completed != nil {
		check.IsCompleted = *completed
	} else {
		check.IsCompleted = !check.IsCompleted
	}
	stub.checks[key] = check
	return check, !exists, nil
}

type historyRepositoryStub struct {
	rows     map[string]models.DailyHistory
	nextID   uint
	listErr  error
	lastTo   string
	lastFrom string
}

func newHistoryRepositoryStub() *historyRepositoryStub {
	return &historyRepositoryStub{rows: make(map[string]models.DailyHistory), nextID: 1}
}

func (stub *historyRepositoryStub) ListByUserRange(userID uint, fromDate string, toDate string) ([]models.DailyHistory, error) {
	stub.lastFrom = fromDate
	stub.lastTo = toDate
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	rows := make([]models.DailyHistory, 0)
	for _, row := range stub.rows {
		if row.UserID == userID && row.HistoryDate >= fromDate && row.HistoryDate <= toDate {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].HistoryDate < rows[j].HistoryDate })
	return rows, nil
}

func (stub *historyRepositoryStub) Upsert(userID uint, historyDate string, percent int, phase string) (models.DailyHistory, bool, error) {
	row, exists := stub.rows[historyDate]
	if !exists {
		row = models.DailyHistory{ID: stub.nextID, UserID: userID, HistoryDate: historyDate}
		stub.nextID++
	}
	row.CompletionPercent = percent
	row.Phase = phase
	stub.rows[historyDate] = row
	return row, !exists, nil
}

type journalRepositoryStub struct {
	journals  map[string]models.Journal
	nextID    uint
	upsertErr error
}

func newJournalRepositoryStub() *journalRepositoryStub {
	return &journalRepositoryStub{journals: make(map[string]models.Journal), nextID: 1}
}

func (stub *journalRepositoryStub) ListByUser(userID uint) ([]models.Journal, error) {
	journals := make([]models.Journal, 0)
	for _, journal := range stub.journals {
		if journal.UserID == userID {
			journals = append(journals, journal)
		}
	}
	sort.Slice(journals, func(i, j int) bool { return journals[i].WeekStart > journals[j].WeekStart })
	return journals, nil
}

func (stub *journalRepositoryStub) FindByUserAndWeek(userID uint, weekStart string) (models.Journal, bool, error) {
	journal, ok := stub.journals[weekStart]
	if !ok || journal.UserID != userID {
		return models.Journal{}, false, nil
	}
	return journal, true, nil
}

func (stub *journalRepositoryStub) Upsert(userID uint, weekStart string, weekEnd string, content *string) (models.Journal, bool, error) {
	if stub.upsertErr != nil {
		return models.Journal{}, false, stub.upsertErr
	}
	journal, exists := stub.journals[weekStart]
	if !exists {
		journal = models.Journal{ID: stub.nextID, UserID: userID, WeekStart: weekStart, WeekEnd: weekEnd}
		stub.nextID++
	}
	journal.Content = content
	stub.journals[weekStart] = journal
	return journal, !exists, nil
}
