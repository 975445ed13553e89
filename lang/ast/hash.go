package ast

import "github.com/cs-au-dk/monotone/utils"

const (
	literalTag uint32 = iota + 1
	inputTag
	varTag
	addTag
	multiplyTag
)

func (e Literal) Hash() uint32 {
	return utils.HashCombine(literalTag, uint32(e.Value))
}

func (Input) Hash() uint32 {
	return utils.HashCombine(inputTag)
}

func (e Var) Hash() uint32 {
	return utils.HashCombine(varTag, utils.HashString(e.Name))
}

func (e Add) Hash() uint32 {
	return utils.HashCombine(addTag, e.Lhs.Hash(), e.Rhs.Hash())
}

func (e Multiply) Hash() uint32 {
	return utils.HashCombine(multiplyTag, e.Lhs.Hash(), e.Rhs.Hash())
}
