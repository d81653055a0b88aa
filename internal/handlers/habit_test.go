package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/productivity-api/internal/models"
	"gorm.io/gorm"
)

// HabitHandlerTestSuite defines the test suite for HabitHandler
type HabitHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *HabitHandler
	user    *models.User
	other   *models.User
}

func (suite *HabitHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.db = setupHandlerTestDB(suite.T())
	suite.handler = NewHabitHandler()
	suite.user = createTestUser(suite.T(), suite.db, "owner@example.com")
	suite.other = createTestUser(suite.T(), suite.db, "other@example.com")
}

func (suite *HabitHandlerTestSuite) createHabit(habit *models.Habit) *models.Habit {
	suite.Require().NoError(suite.db.Create(habit).Error)
	return habit
}

func (suite *HabitHandlerTestSuite) TestCreateHabit_DefaultsToDaily() {
	c, w := authedContext(http.MethodPost, "/habits", []byte(`{"name":"stretch"}`), suite.user.ID)

	suite.handler.CreateHabit(c)

	suite.Equal(http.StatusCreated, w.Code)

	var response struct {
		Habit models.Habit `json:"habit"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal("stretch", response.Habit.Name)
	suite.Equal(models.FrequencyDaily, response.Habit.Frequency)
}

func (suite *HabitHandlerTestSuite) TestUpdateHabit_FrequencyOnly() {
	habit := suite.createHabit(&models.Habit{UserID: suite.user.ID, Name: "run", Frequency: models.FrequencyDaily})

	c, w := authedContext(http.MethodPatch, "/habits/"+habit.ID.String(), []byte(`{"frequency":"weekly"}`), suite.user.ID)
	c.Params = gin.Params{{Key: "id", Value: habit.ID.String()}}

	suite.handler.UpdateHabit(c)

	suite.Equal(http.StatusOK, w.Code)

	var response struct {
		Habit models.Habit `json:"habit"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal("run", response.Habit.Name)
	suite.Equal(models.FrequencyWeekly, response.Habit.Frequency)
}

func (suite *HabitHandlerTestSuite) TestCompleteHabit_DefaultsToToday() {
	habit := suite.createHabit(&models.Habit{UserID: suite.user.ID, Name: "read", Frequency: models.FrequencyDaily})

	c, w := authedContext(http.MethodPost, "/habits/"+habit.ID.String()+"/complete", nil, suite.user.ID)
	c.Params = gin.Params{{Key: "id", Value: habit.ID.String()}}

	suite.handler.CompleteHabit(c)

	suite.Equal(http.StatusOK, w.Code)

	var response struct {
		Completion models.HabitCompletion `json:"completion"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal(habit.ID, response.Completion.HabitID)
	suite.Equal(time.Now().Format("2006-01-02"), response.Completion.CompletedOn.Format("2006-01-02"))
}

func (suite *HabitHandlerTestSuite) TestCompleteHabit_DuplicateDateConflicts() {
	habit := suite.createHabit(&models.Habit{UserID: suite.user.ID, Name: "read", Frequency: models.FrequencyDaily})
	body := []byte(`{"completed_on":"2026-08-01"}`)

	c, w := authedContext(http.MethodPost, "/habits/"+habit.ID.String()+"/complete", body, suite.user.ID)
	c.Params = gin.Params{{Key: "id", Value: habit.ID.String()}}
	suite.handler.CompleteHabit(c)
	suite.Equal(http.StatusOK, w.Code)

	c, w = authedContext(http.MethodPost, "/habits/"+habit.ID.String()+"/complete", body, suite.user.ID)
	c.Params = gin.Params{{Key: "id", Value: habit.ID.String()}}
	suite.handler.CompleteHabit(c)

	suite.Equal(http.StatusConflict, w.Code)
	suite.JSONEq(`{"error":"Habit already completed for that date"}`, w.Body.String())

	// Still exactly one completion row.
	var count int64
	suite.db.Model(&models.HabitCompletion{}).Where("habit_id = ?", habit.ID).Count(&count)
	suite.Equal(int64(1), count)
}

func (suite *HabitHandlerTestSuite) TestCompleteHabit_DifferentDatesAllowed() {
	habit := suite.createHabit(&models.Habit{UserID: suite.user.ID, Name: "read", Frequency: models.FrequencyDaily})

	for _, date := range []string{"2026-08-01", "2026-08-02"} {
		body := []byte(`{"completed_on":"` + date + `"}`)
		c, w := authedContext(http.MethodPost, "/habits/"+habit.ID.String()+"/complete", body, suite.user.ID)
		c.Params = gin.Params{{Key: "id", Value: habit.ID.String()}}
		suite.handler.CompleteHabit(c)
		suite.Equal(http.StatusOK, w.Code)
	}
}

func (suite *HabitHandlerTestSuite) TestCompleteHabit_NotOwned() {
	habit := suite.createHabit(&models.Habit{UserID: suite.other.ID, Name: "theirs", Frequency: models.FrequencyDaily})

	c, w := authedContext(http.MethodPost, "/habits/"+habit.ID.String()+"/complete", nil, suite.user.ID)
	c.Params = gin.Params{{Key: "id", Value: habit.ID.String()}}

	suite.handler.CompleteHabit(c)

	suite.Equal(http.StatusNotFound, w.Code)

	var count int64
	suite.db.Model(&models.HabitCompletion{}).Count(&count)
	suite.Equal(int64(0), count)
}

func (suite *HabitHandlerTestSuite) TestDeleteHabit() {
	habit := suite.createHabit(&models.Habit{UserID: suite.user.ID, Name: "h", Frequency: models.FrequencyDaily})

	c, w := authedContext(http.MethodDelete, "/habits/"+habit.ID.String(), nil, suite.user.ID)
	c.Params = gin.Params{{Key: "id", Value: habit.ID.String()}}
	suite.handler.DeleteHabit(c)
	suite.Equal(http.StatusNoContent, w.Code)

	c, w = authedContext(http.MethodDelete, "/habits/"+habit.ID.String(), nil, suite.user.ID)
	c.Params = gin.Params{{Key: "id", Value: habit.ID.String()}}
	suite.handler.DeleteHabit(c)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HabitHandlerTestSuite) TestListHabits_ScopedToOwner() {
	suite.createHabit(&models.Habit{UserID: suite.user.ID, Name: "mine", Frequency: models.FrequencyDaily})
	suite.createHabit(&models.Habit{UserID: suite.other.ID, Name: "theirs", Frequency: models.FrequencyWeekly})

	c, w := authedContext(http.MethodGet, "/habits", nil, suite.user.ID)

	suite.handler.ListHabits(c)

	suite.Equal(http.StatusOK, w.Code)

	var response struct {
		Habits []models.Habit `json:"habits"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Len(response.Habits, 1)
	suite.Equal("mine", response.Habits[0].Name)
}

func TestHabitHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HabitHandlerTestSuite))
}
