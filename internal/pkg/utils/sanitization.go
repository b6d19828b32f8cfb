package utils

import (
	"mawaid-service/internal/pkg/dto/requests"
	"strings"
)

func SanitizeRegisterUserRequest(request *requests.RegisterUser) {
	request.Email = strings.ToLower(strings.TrimSpace(request.Email))
	request.Name = strings.TrimSpace(request.Name)
	request.Phone = strings.TrimSpace(request.Phone)
	request.Gender = strings.ToLower(strings.TrimSpace(request.Gender))
	request.Role = strings.ToLower(strings.TrimSpace(request.Role))
}

func SanitizeLoginUserRequest(request *requests.LoginUser) {
	request.Email = strings.ToLower(strings.TrimSpace(request.Email))
}

func SanitizeUpdateProfileRequest(request *requests.UpdateProfile) {
	request.Name = strings.TrimSpace(request.Name)
	request.Phone = strings.TrimSpace(request.Phone)
	request.Gender = strings.ToLower(strings.TrimSpace(request.Gender))
}

func SanitizeCreateAppointmentRequest(request *requests.CreateAppointment) {
	request.Title = strings.TrimSpace(request.Title)
	request.StartingDate = strings.TrimSpace(request.StartingDate)
	request.EndingDate = strings.TrimSpace(request.EndingDate)
	request.StartingTime = strings.TrimSpace(request.StartingTime)
	request.EndingTime = strings.TrimSpace(request.EndingTime)
	request.Groups = trimAll(request.Groups)
	request.Attendance = trimAll(request.Attendance)
}

func SanitizeSubmitRatingRequest(request *requests.SubmitRating) {
	request.Comment = strings.TrimSpace(request.Comment)
	for i := range request.Reviews {
		request.Reviews[i].Title = strings.TrimSpace(request.Reviews[i].Title)
	}
}

func SanitizeChangeGroupMembersRequest(request *requests.ChangeGroupMembers) {
	request.Members = trimAll(request.Members)
}

func trimAll(values []string) []string {
	trimmed := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value != "" {
			trimmed = append(trimmed, value)
		}
	}
	return trimmed
}
