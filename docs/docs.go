// Package docs swag 文档注册，由 main.go 与各 controller 的注释生成
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/health": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "系统"
                ],
                "summary": "健康检查",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/util.Response"
                        }
                    }
                }
            }
        },
        "/api/dashboard/stats": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "仪表盘"
                ],
                "summary": "获取仪表盘统计",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/util.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/model.DashboardStats"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/util.Response"
                        }
                    }
                }
            }
        },
        "/api/dashboard/streak": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "仪表盘"
                ],
                "summary": "获取连续学习天数",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/util.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/model.StreakSummary"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/util.Response"
                        }
                    }
                }
            }
        },
        "/api/profile/overview": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "个人主页"
                ],
                "summary": "个人主页概览",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/util.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/model.ProfileOverview"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/util.Response"
                        }
                    }
                }
            }
        },
        "/api/profile/streak": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "个人主页"
                ],
                "summary": "最近学习记录",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/util.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/model.StreakDay"
                                            }
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/util.Response"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "integer",
                        "description": "天数，默认 7，最大 30",
                        "name": "days",
                        "in": "query"
                    }
                ]
            }
        },
        "/api/reports/stats": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "报表"
                ],
                "summary": "月度报告卡片",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/util.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/model.ReportStats"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/util.Response"
                        }
                    }
                }
            }
        },
        "/api/reports/hours-distribution": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "报表"
                ],
                "summary": "学习时长分布",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/util.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/model.HoursBucket"
                                            }
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/util.Response"
                        }
                    }
                }
            }
        },
        "/api/reports/skill-distribution": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "报表"
                ],
                "summary": "技能分布",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/util.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/model.CategoryShare"
                                            }
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/util.Response"
                        }
                    }
                }
            }
        },
        "/api/reports/certification-history": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "报表"
                ],
                "summary": "证书获取历史",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/util.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/model.CertificationMonth"
                                            }
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/util.Response"
                        }
                    }
                }
            }
        },
        "/api/reports/skill-growth": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "报表"
                ],
                "summary": "技能成长曲线",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/util.Response"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/util.Response"
                        }
                    }
                }
            }
        },
        "/api/reports/daily-activity": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "报表"
                ],
                "summary": "每日学习时长",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/util.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/model.DailyActivity"
                                            }
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/util.Response"
                        }
                    }
                }
            }
        },
        "/api/reports/overview": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "报表"
                ],
                "summary": "报表总览",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/util.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/model.ReportsOverview"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/util.Response"
                        }
                    }
                }
            }
        },
        "/api/reports/skills-distribution": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "报表"
                ],
                "summary": "技能类型统计",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/util.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/model.SkillTypeSummary"
                                            }
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/util.Response"
                        }
                    }
                }
            }
        },
        "/api/reports/skills-progression": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "报表"
                ],
                "summary": "技能熟练度走势",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/util.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/model.MonthlyLevel"
                                            }
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/util.Response"
                        }
                    }
                }
            }
        },
        "/api/reports/technical-growth": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "报表"
                ],
                "summary": "技术类技能成长",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/util.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/model.CategoryLevel"
                                            }
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/util.Response"
                        }
                    }
                }
            }
        },
        "/api/reports/soft-growth": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "报表"
                ],
                "summary": "软技能成长",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/util.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/model.SkillLevel"
                                            }
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/util.Response"
                        }
                    }
                }
            }
        },
        "/api/reports/overall-progress": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "报表"
                ],
                "summary": "整体进度",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/util.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/model.TypeLevel"
                                            }
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/util.Response"
                        }
                    }
                }
            }
        },
        "/api/reports/cache": {
            "delete": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "报表"
                ],
                "summary": "清除报表缓存",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/util.Response"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/util.Response"
                        }
                    }
                }
            }
        },
        "/api/skills": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "技能"
                ],
                "summary": "技能列表",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/util.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/model.SkillSummary"
                                            }
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/util.Response"
                        }
                    }
                }
            }
        },
        "/api/skills/growth": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "技能"
                ],
                "summary": "技能成长",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/util.Response"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/util.Response"
                        }
                    }
                }
            }
        },
        "/api/skills/recommendations": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "技能"
                ],
                "summary": "技能提升建议",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/util.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/model.SkillRecommendation"
                                            }
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/util.Response"
                        }
                    }
                }
            }
        },
        "/api/skills/most-used": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "技能"
                ],
                "summary": "最常练习的技能",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/util.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/model.SkillUsage"
                                            }
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/util.Response"
                        }
                    }
                }
            }
        },
        "/api/skills/recent-improvements": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "技能"
                ],
                "summary": "最近的熟练度记录",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/util.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/model.SkillImprovement"
                                            }
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/util.Response"
                        }
                    }
                }
            }
        },
        "/api/certifications/stats": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "证书"
                ],
                "summary": "证书统计",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/util.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/model.CertificationStats"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/util.Response"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "util.Response": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "integer"
                },
                "message": {
                    "type": "string"
                },
                "data": {
                    "type": "object"
                }
            }
        },
        "model.MetricDelta": {
            "type": "object",
            "properties": {
                "current": {
                    "type": "number"
                },
                "change": {
                    "type": "integer"
                }
            }
        },
        "model.DashboardStats": {
            "type": "object",
            "properties": {
                "activeCourses": {
                    "$ref": "#/definitions/model.MetricDelta"
                },
                "certifications": {
                    "$ref": "#/definitions/model.MetricDelta"
                },
                "skillsMastered": {
                    "$ref": "#/definitions/model.MetricDelta"
                },
                "learningHours": {
                    "$ref": "#/definitions/model.MetricDelta"
                }
            }
        },
        "model.StreakSummary": {
            "type": "object",
            "properties": {
                "currentStreak": {
                    "type": "integer"
                },
                "longestStreak": {
                    "type": "integer"
                }
            }
        },
        "model.ProfileSummary": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "studyHours": {
                    "type": "integer"
                },
                "completedCourses": {
                    "type": "integer"
                },
                "certificates": {
                    "type": "integer"
                },
                "currentStreak": {
                    "type": "integer"
                }
            }
        },
        "model.GoalPercentages": {
            "type": "object",
            "properties": {
                "courseCompletion": {
                    "type": "integer"
                },
                "studyTimeTarget": {
                    "type": "integer"
                },
                "certificationGoals": {
                    "type": "integer"
                }
            }
        },
        "model.ProfileHighlights": {
            "type": "object",
            "properties": {
                "longestStreak": {
                    "type": "integer"
                },
                "monthlyGoalsCompleted": {
                    "type": "integer"
                },
                "monthlyGoalsTotal": {
                    "type": "integer"
                },
                "totalHours": {
                    "type": "integer"
                },
                "averageRating": {
                    "type": "string"
                }
            }
        },
        "model.ProfileOverview": {
            "type": "object",
            "properties": {
                "profile": {
                    "$ref": "#/definitions/model.ProfileSummary"
                },
                "goals": {
                    "$ref": "#/definitions/model.GoalPercentages"
                },
                "highlights": {
                    "$ref": "#/definitions/model.ProfileHighlights"
                }
            }
        },
        "model.StreakDay": {
            "type": "object",
            "properties": {
                "date": {
                    "type": "string"
                },
                "hoursSpent": {
                    "type": "number"
                }
            }
        },
        "model.GoalCount": {
            "type": "object",
            "properties": {
                "completed": {
                    "type": "integer"
                },
                "total": {
                    "type": "integer"
                }
            }
        },
        "model.ReportStats": {
            "type": "object",
            "properties": {
                "progress": {
                    "type": "integer"
                },
                "goals": {
                    "$ref": "#/definitions/model.GoalCount"
                },
                "studyTime": {
                    "type": "number"
                },
                "certifications": {
                    "type": "integer"
                }
            }
        },
        "model.HoursBucket": {
            "type": "object",
            "properties": {
                "month": {
                    "type": "string"
                },
                "category": {
                    "type": "string"
                },
                "hours": {
                    "type": "number"
                }
            }
        },
        "model.CategoryShare": {
            "type": "object",
            "properties": {
                "category": {
                    "type": "string"
                },
                "percentage": {
                    "type": "number"
                }
            }
        },
        "model.CertificationMonth": {
            "type": "object",
            "properties": {
                "month": {
                    "type": "string"
                },
                "count": {
                    "type": "integer"
                }
            }
        },
        "model.DailyActivity": {
            "type": "object",
            "properties": {
                "date": {
                    "type": "string"
                },
                "hours": {
                    "type": "number"
                }
            }
        },
        "model.ReportsOverview": {
            "type": "object",
            "properties": {
                "total_skills": {
                    "type": "integer"
                },
                "total_courses": {
                    "type": "integer"
                },
                "total_certifications": {
                    "type": "integer"
                },
                "total_hours": {
                    "type": "number"
                }
            }
        },
        "model.SkillTypeSummary": {
            "type": "object",
            "properties": {
                "type": {
                    "type": "string"
                },
                "count": {
                    "type": "integer"
                },
                "avg_proficiency": {
                    "type": "number"
                }
            }
        },
        "model.MonthlyLevel": {
            "type": "object",
            "properties": {
                "month": {
                    "type": "string"
                },
                "average_level": {
                    "type": "number"
                }
            }
        },
        "model.CategoryLevel": {
            "type": "object",
            "properties": {
                "month": {
                    "type": "string"
                },
                "category": {
                    "type": "string"
                },
                "level": {
                    "type": "number"
                }
            }
        },
        "model.SkillLevel": {
            "type": "object",
            "properties": {
                "month": {
                    "type": "string"
                },
                "skill": {
                    "type": "string"
                },
                "level": {
                    "type": "number"
                }
            }
        },
        "model.TypeLevel": {
            "type": "object",
            "properties": {
                "month": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                },
                "avg_level": {
                    "type": "number"
                }
            }
        },
        "model.SkillSummary": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "name": {
                    "type": "string"
                },
                "category": {
                    "type": "string"
                },
                "proficiency_level": {
                    "type": "number"
                },
                "history": {
                    "type": "array",
                    "items": {
                        "type": "number"
                    }
                },
                "dates": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "model.SkillRecommendation": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "skill_name": {
                    "type": "string"
                },
                "priority": {
                    "type": "string"
                }
            }
        },
        "model.SkillUsage": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "proficiency_level": {
                    "type": "number"
                },
                "usage_count": {
                    "type": "integer"
                }
            }
        },
        "model.SkillImprovement": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "proficiency_level": {
                    "type": "number"
                },
                "recorded_date": {
                    "type": "string"
                }
            }
        },
        "model.CertificationStats": {
            "type": "object",
            "properties": {
                "total": {
                    "type": "integer"
                },
                "active": {
                    "type": "integer"
                },
                "expiringSoon": {
                    "type": "integer"
                },
                "expired": {
                    "type": "integer"
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "SkillTracker 后端 API",
	Description:      "学习进度统计与报表服务。",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
