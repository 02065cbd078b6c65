// Package review 提供充值、提现与 KYC 共用的审核状态机。
// 三类提交共享同一个 pending -> approved / rejected 生命周期，
// 状态一旦进入终态不允许再次流转。
package review

import (
	"context"
	"errors"

	"github.com/wyfcoding/pkg/fsm"
)

// Status 审核状态
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// 审核事件
const (
	EventApprove = "APPROVE"
	EventReject  = "REJECT"
	EventResume  = "RESUBMIT"
)

// DefaultRejectNote 拒绝时未填写备注使用的缺省文案
const DefaultRejectNote = "Rejected by admin"

// ErrInvalidState 在非 pending 状态上执行审核动作
var ErrInvalidState = errors.New("only pending submissions can be reviewed")

// Machine 审核状态机，封装共享的流转规则
type Machine struct {
	m *fsm.Machine[string, string]
}

// NewMachine 以当前状态构建状态机。
// pending 可以被批准或拒绝；审核动作对 approved / rejected 均不可用。
// RESUBMIT 仅供 KYC 重传使用，任意状态回到 pending。
func NewMachine(current Status) *Machine {
	m := fsm.NewMachine[string, string](string(current))
	m.AddTransition(string(StatusPending), EventApprove, string(StatusApproved))
	m.AddTransition(string(StatusPending), EventReject, string(StatusRejected))
	m.AddTransition(string(StatusPending), EventResume, string(StatusPending))
	m.AddTransition(string(StatusApproved), EventResume, string(StatusPending))
	m.AddTransition(string(StatusRejected), EventResume, string(StatusPending))
	return &Machine{m: m}
}

// Approve 尝试 pending -> approved
func (r *Machine) Approve(ctx context.Context) error {
	if err := r.m.Trigger(ctx, EventApprove); err != nil {
		return ErrInvalidState
	}
	return nil
}

// Reject 尝试 pending -> rejected
func (r *Machine) Reject(ctx context.Context) error {
	if err := r.m.Trigger(ctx, EventReject); err != nil {
		return ErrInvalidState
	}
	return nil
}

// Resubmit 尝试回到 pending，仅用于允许重传的提交类型
func (r *Machine) Resubmit(ctx context.Context) error {
	if err := r.m.Trigger(ctx, EventResume); err != nil {
		return ErrInvalidState
	}
	return nil
}
